package rescue

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/nicholaswilde/rescue-groups-mcp/internal/errors"
	"github.com/nicholaswilde/rescue-groups-mcp/internal/rescue/client"
	"github.com/nicholaswilde/rescue-groups-mcp/internal/rescue/tools"
)

func init() {
	rootCmd.AddCommand(searchOrgsCmd)
	searchOrgsCmd.Flags().StringVar(&orgPostalCode, "postal-code", "", "zip code to search around")
	searchOrgsCmd.Flags().IntVar(&orgMiles, "miles", 0, "search radius in miles")
	searchOrgsCmd.Flags().StringVar(&orgQuery, "query", "", "organization name (partial match)")

	rootCmd.AddCommand(getOrgCmd)
	getOrgCmd.Flags().StringVar(&orgID, "org-id", "", "organization id")
	getOrgCmd.MarkFlagRequired("org-id")

	rootCmd.AddCommand(listOrgAnimalsCmd)
	listOrgAnimalsCmd.Flags().StringVar(&orgAnimalsID, "org-id", "", "organization id")
	listOrgAnimalsCmd.MarkFlagRequired("org-id")
}

var (
	orgPostalCode string
	orgMiles      int
	orgQuery      string
	orgID         string
	orgAnimalsID  string
)

var searchOrgsCmd = &cobra.Command{
	Use:   "search-orgs",
	Short: "Search for rescue organizations",
	Run: func(cmd *cobra.Command, args []string) {
		app, err := newApp()
		if err != nil {
			log.Err(err).Msg("failed to initialize")
			return
		}

		orgArgs := client.OrgSearchArgs{
			PostalCode: strFlag(cmd, "postal-code", &orgPostalCode),
			Miles:      intFlag(cmd, "miles", &orgMiles),
			Query:      strFlag(cmd, "query", &orgQuery),
		}

		raw, err := app.client.SearchOrganizations(context.Background(), orgArgs)
		printOutput(raw, err, tools.FormatOrgResults)
	},
}

var getOrgCmd = &cobra.Command{
	Use:   "get-org",
	Short: "Get details for a specific organization",
	Run: func(cmd *cobra.Command, args []string) {
		app, err := newApp()
		if err != nil {
			log.Err(err).Msg("failed to initialize")
			return
		}

		raw, err := app.client.GetOrganizationDetails(context.Background(), orgID)
		printOutput(raw, err, func(raw json.RawMessage) (string, error) {
			item := client.ExtractSingleItem(gjson.GetBytes(raw, "data"))
			if item == "" {
				return "", errors.NotFound("organization " + orgID)
			}
			return tools.FormatSingleOrg(gjson.Parse(item)), nil
		})
	},
}

var listOrgAnimalsCmd = &cobra.Command{
	Use:   "list-org-animals",
	Short: "List animals at a specific organization",
	Run: func(cmd *cobra.Command, args []string) {
		app, err := newApp()
		if err != nil {
			log.Err(err).Msg("failed to initialize")
			return
		}

		raw, err := app.client.ListOrgAnimals(context.Background(), orgAnimalsID)
		printOutput(raw, err, tools.FormatAnimalResults)
	},
}
