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
	rootCmd.AddCommand(getAnimalCmd)
	getAnimalCmd.Flags().StringVar(&animalID, "animal-id", "", "animal id")
	getAnimalCmd.MarkFlagRequired("animal-id")

	rootCmd.AddCommand(getContactCmd)
	getContactCmd.Flags().StringVar(&contactAnimalID, "animal-id", "", "animal id")
	getContactCmd.MarkFlagRequired("animal-id")

	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().StringSliceVar(&compareIDs, "animal-ids", nil, "comma-separated animal ids to compare (max 5)")
	compareCmd.MarkFlagRequired("animal-ids")
}

var (
	animalID        string
	contactAnimalID string
	compareIDs      []string
)

var getAnimalCmd = &cobra.Command{
	Use:   "get-animal",
	Short: "Get details for a specific animal",
	Run: func(cmd *cobra.Command, args []string) {
		app, err := newApp()
		if err != nil {
			log.Err(err).Msg("failed to initialize")
			return
		}

		raw, err := app.client.GetAnimalDetails(context.Background(), animalID)
		printOutput(raw, err, func(raw json.RawMessage) (string, error) {
			item := client.ExtractSingleItem(gjson.GetBytes(raw, "data"))
			if item == "" {
				return "", errors.NotFound("animal " + animalID)
			}
			return tools.FormatSingleAnimal(gjson.Parse(item)), nil
		})
	},
}

var getContactCmd = &cobra.Command{
	Use:   "get-contact",
	Short: "Get contact information for a specific animal",
	Run: func(cmd *cobra.Command, args []string) {
		app, err := newApp()
		if err != nil {
			log.Err(err).Msg("failed to initialize")
			return
		}

		raw, err := app.client.GetContactInfo(context.Background(), contactAnimalID)
		printOutput(raw, err, tools.FormatContactInfo)
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare multiple animals side-by-side",
	Run: func(cmd *cobra.Command, args []string) {
		app, err := newApp()
		if err != nil {
			log.Err(err).Msg("failed to initialize")
			return
		}

		raw, err := app.client.CompareAnimals(context.Background(), compareIDs)
		printOutput(raw, err, tools.FormatComparisonTable)
	},
}
