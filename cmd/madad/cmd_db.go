package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/madad/app/models"
	"github.com/shashiranjanraj/madad/app/repositories"
	"github.com/shashiranjanraj/madad/config"
	"github.com/shashiranjanraj/madad/internal/store"
)

// madad index:ensure — create the geospatial and uniqueness indexes.
// serve does this on boot too; this command exists for provisioning a
// fresh database ahead of the first deploy.
var indexEnsureCmd = &cobra.Command{
	Use:   "index:ensure",
	Short: "Create the 2dsphere and unique user indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		st, err := store.Connect(ctx)
		if err != nil {
			return err
		}
		defer st.Disconnect(ctx) //nolint:errcheck

		if err := st.EnsureIndexes(ctx); err != nil {
			return err
		}
		fmt.Println("Indexes ensured.")
		return nil
	},
}

// madad seed — insert demo vendors around Karachi for local development.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo vendors for local development",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		st, err := store.Connect(ctx)
		if err != nil {
			return err
		}
		defer st.Disconnect(ctx) //nolint:errcheck

		repo := repositories.NewVendorRepository(st)
		now := time.Now().UTC()

		for _, v := range demoVendors(now) {
			vendor := v
			if err := repo.Create(ctx, &vendor); err != nil {
				return err
			}
			fmt.Printf("seeded %s (%s) id=%s\n", vendor.Name, vendor.ServiceType, vendor.ID.Hex())
		}
		return nil
	},
}

// demoVendors are spread around central Karachi so a nearby search at
// (67.0, 24.86) with the default radius hits all of them.
func demoVendors(now time.Time) []models.Vendor {
	base := models.Vendor{
		Approved:      true,
		Verified:      true,
		PaymentStatus: models.PaymentActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	mk := func(name, phone string, st models.ServiceType, lng, lat float64, addr string) models.Vendor {
		v := base
		v.Name = name
		v.Phone = phone
		v.ServiceType = st
		v.Location = models.NewGeoPoint(lng, lat)
		v.Address = addr
		return v
	}

	return []models.Vendor{
		mk("Bilal Towing", "+923001234501", models.ServiceTowTruck, 67.0011, 24.8607, "Saddar, Karachi"),
		mk("Karachi Auto Care", "+923001234502", models.ServiceMechanic, 67.0284, 24.8550, "Shahrah-e-Faisal"),
		mk("City Rest Hotel", "+923001234503", models.ServiceHotel, 67.0099, 24.8430, "Clifton Block 5"),
		mk("Al-Shifa Clinic", "+923001234504", models.ServiceMedical, 66.9902, 24.8701, "Nazimabad"),
		mk("Sparkle Car Wash", "+923001234505", models.ServiceCarWash, 67.0453, 24.8822, "Gulshan-e-Iqbal"),
		mk("Rafiq Electric Works", "+923001234506", models.ServiceElectrician, 67.0150, 24.8900, "Liaquatabad"),
		mk("Hamza Plumbing", "+923001234507", models.ServicePlumber, 66.9750, 24.8510, "Kharadar"),
	}
}
