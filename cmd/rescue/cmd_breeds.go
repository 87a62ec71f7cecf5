package rescue

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/nicholaswilde/rescue-groups-mcp/internal/errors"
	"github.com/nicholaswilde/rescue-groups-mcp/internal/rescue/client"
	"github.com/nicholaswilde/rescue-groups-mcp/internal/rescue/tools"
)

func init() {
	rootCmd.AddCommand(listSpeciesCmd)

	rootCmd.AddCommand(listBreedsCmd)
	listBreedsCmd.Flags().StringVar(&breedsSpecies, "species", "", "type of animal (dogs, cats, rabbits)")
	listBreedsCmd.MarkFlagRequired("species")

	rootCmd.AddCommand(getBreedCmd)
	getBreedCmd.Flags().StringVar(&breedID, "breed-id", "", "breed id")
	getBreedCmd.MarkFlagRequired("breed-id")

	rootCmd.AddCommand(listMetadataCmd)
	listMetadataCmd.Flags().StringVar(&metadataType, "metadata-type", "", "metadata type (colors, patterns, qualities)")
	listMetadataCmd.Flags().StringVar(&metadataSpecies, "species", "", "optional species filter")
	listMetadataCmd.MarkFlagRequired("metadata-type")

	rootCmd.AddCommand(listMetadataTypesCmd)
}

var (
	breedsSpecies   string
	breedID         string
	metadataType    string
	metadataSpecies string
)

var listSpeciesCmd = &cobra.Command{
	Use:   "list-species",
	Short: "List available species",
	Run: func(cmd *cobra.Command, args []string) {
		app, err := newApp()
		if err != nil {
			log.Err(err).Msg("failed to initialize")
			return
		}

		raw, err := app.client.ListSpecies(context.Background())
		printOutput(raw, err, tools.FormatSpeciesResults)
	},
}

var listBreedsCmd = &cobra.Command{
	Use:   "list-breeds",
	Short: "List available breeds for a species",
	Run: func(cmd *cobra.Command, args []string) {
		app, err := newApp()
		if err != nil {
			log.Err(err).Msg("failed to initialize")
			return
		}

		raw, err := app.client.ListBreeds(context.Background(), breedsSpecies)
		printOutput(raw, err, func(raw json.RawMessage) (string, error) {
			return tools.FormatBreedResults(raw, breedsSpecies)
		})
	},
}

var getBreedCmd = &cobra.Command{
	Use:   "get-breed",
	Short: "Get details for a specific breed",
	Run: func(cmd *cobra.Command, args []string) {
		app, err := newApp()
		if err != nil {
			log.Err(err).Msg("failed to initialize")
			return
		}

		raw, err := app.client.GetBreedDetails(context.Background(), breedID)
		printOutput(raw, err, func(raw json.RawMessage) (string, error) {
			item := client.ExtractSingleItem(gjson.GetBytes(raw, "data"))
			if item == "" {
				return "", errors.NotFound("breed " + breedID)
			}
			return tools.FormatBreedDetails(gjson.Parse(item)), nil
		})
	},
}

var listMetadataCmd = &cobra.Command{
	Use:   "list-metadata",
	Short: "List metadata values (colors, patterns, etc.)",
	Run: func(cmd *cobra.Command, args []string) {
		app, err := newApp()
		if err != nil {
			log.Err(err).Msg("failed to initialize")
			return
		}

		metaArgs := client.MetadataArgs{
			MetadataType: metadataType,
			Species:      strFlag(cmd, "species", &metadataSpecies),
		}

		raw, err := app.client.ListMetadata(context.Background(), metaArgs)
		printOutput(raw, err, func(raw json.RawMessage) (string, error) {
			return tools.FormatMetadataResults(raw, metadataType)
		})
	},
}

var listMetadataTypesCmd = &cobra.Command{
	Use:   "list-metadata-types",
	Short: "List available metadata types",
	Run: func(cmd *cobra.Command, args []string) {
		app, err := newApp()
		if err != nil {
			log.Err(err).Msg("failed to initialize")
			return
		}

		raw, err := app.client.ListMetadataTypes()
		printOutput(raw, err, func(raw json.RawMessage) (string, error) {
			var types []string
			for _, t := range gjson.GetBytes(raw, "data").Array() {
				types = append(types, t.String())
			}
			return "### Supported Metadata Types\n\n" + strings.Join(types, "\n"), nil
		})
	},
}
