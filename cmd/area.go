package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xronetech/leads/geolocation"
	"github.com/xronetech/leads/models/booking_models"
)

var (
	areaLat float64
	areaLng float64
)

var areaCmd = &cobra.Command{
	Use:   "area",
	Short: "Show the operator base nearest to a coordinate",
	RunE: func(cmd *cobra.Command, args []string) error {
		coord, err := booking_models.NewGeoCoordinate(areaLat, areaLng, "")
		if err != nil {
			return err
		}

		cov, err := geolocation.NewServiceArea(geolocation.DefaultBases).Nearest(coord)
		if err != nil {
			return err
		}

		status := "outside"
		if cov.Covered {
			status = "inside"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s): %.1f km, %s its %.0f km radius\n",
			cov.Base.Name, cov.Base.ID, cov.DistanceKm, status, cov.Base.RadiusKm)
		return nil
	},
}

func init() {
	areaCmd.Flags().Float64Var(&areaLat, "lat", 0, "Latitude in degrees")
	areaCmd.Flags().Float64Var(&areaLng, "lng", 0, "Longitude in degrees")
	_ = areaCmd.MarkFlagRequired("lat")
	_ = areaCmd.MarkFlagRequired("lng")
}
