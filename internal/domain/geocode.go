package domain

import (
	"context"
	"log/slog"
)

// EnrichWithPlaceName fills PlaceName from the station coordinates. A nil
// geocoder, a lookup failure, or a station without coordinates leaves the
// station unchanged.
func EnrichWithPlaceName(ctx context.Context, station Station, geocoder Geocoder, logger *slog.Logger) Station {
	if geocoder == nil {
		return station
	}
	if station.Coordinates.Lat == 0 && station.Coordinates.Long == 0 {
		return station
	}

	result, err := geocoder.ReverseGeocode(ctx, station.Coordinates.Lat, station.Coordinates.Long)
	if err != nil {
		logger.Warn("reverse geocoding failed",
			"station_id", station.ID,
			"lat", station.Coordinates.Lat,
			"long", station.Coordinates.Long,
			"error", err,
		)
		return station
	}

	switch {
	case result.FormattedAddress != "":
		station.PlaceName = result.FormattedAddress
	case result.PlaceName != "":
		station.PlaceName = result.PlaceName
	}
	return station
}

// EnrichStations runs EnrichWithPlaceName over a copy of the slice.
func EnrichStations(ctx context.Context, stations []Station, geocoder Geocoder, logger *slog.Logger) []Station {
	out := CloneStations(stations)
	if geocoder == nil {
		return out
	}
	for i := range out {
		if ctx.Err() != nil {
			break
		}
		out[i] = EnrichWithPlaceName(ctx, out[i], geocoder, logger)
	}
	return out
}
