package main

import (
	"encoding/json"
	"fmt"

	"github.com/partyline/partyline/internal/config"
	"github.com/spf13/cobra"
)

var checkConfigJSON bool

var checkConfigCmd = &cobra.Command{
	Use:   "check-config",
	Short: "Validate the party configuration and print the effective settings.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadOptional()
		if err != nil {
			return err
		}

		warnings := cfg.Validate()
		if cfg.PartyAPIURL == "" {
			warnings = append(warnings, "PARTY_API_URL is required to serve")
		}

		if checkConfigJSON {
			b, err := json.MarshalIndent(map[string]any{
				"party_api_url": cfg.PartyAPIURL,
				"http_addr":     cfg.HTTPAddr,
				"metrics_addr":  cfg.MetricsAddr,
				"party_id":      cfg.PartyID,
				"party_name":    cfg.PartyName,
				"party_date":    cfg.PartyDate,
				"party_time":    cfg.PartyTime,
				"location":      cfg.PartyLocation,
				"admin_emails":  cfg.AdminEmails,
				"features": map[string]bool{
					"photos":    cfg.EnablePhotos,
					"rsvp":      cfg.EnableRSVP,
					"games":     cfg.EnableGames,
					"gifts":     cfg.EnableGifts,
					"guestbook": cfg.EnableGuestbook,
					"timeline":  cfg.EnableTimeline,
				},
				"warnings": warnings,
			}, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(b))
			return nil
		}

		fmt.Printf("party %s (%s) on %s %s at %s\n", cfg.PartyID, cfg.PartyName, cfg.PartyDate, cfg.PartyTime, cfg.PartyLocation)
		fmt.Printf("upstream %s, serving on %s\n", cfg.PartyAPIURL, cfg.HTTPAddr)
		for _, warning := range warnings {
			fmt.Printf("warning: %s\n", warning)
		}
		return nil
	},
}

func init() {
	checkConfigCmd.Flags().BoolVar(&checkConfigJSON, "json", false, "Print the effective configuration as JSON")
}
