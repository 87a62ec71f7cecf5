package tools

import "github.com/nicholaswilde/rescue-groups-mcp/internal/mcp"

func objectSchema(properties mcp.M, required ...string) mcp.ToolSchema {
	return mcp.ToolSchema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

func prop(typ, description string) mcp.M {
	return mcp.M{"type": typ, "description": description}
}

func allTools() []mcp.Tool {
	return []mcp.Tool{
		{
			Name:        "list_animals",
			Description: "List the most recent adoptable animals available globally.",
			InputSchema: objectSchema(mcp.M{}),
		},
		{
			Name:        "list_species",
			Description: "List all animal species supported by the RescueGroups API.",
			InputSchema: objectSchema(mcp.M{}),
		},
		{
			Name:        "list_metadata",
			Description: "List valid metadata values for animal attributes (colors, patterns, qualities).",
			InputSchema: objectSchema(mcp.M{
				"metadata_type": prop("string", "The type of metadata to list (e.g., colors, patterns, qualities)"),
				"species":       prop("string", "Optional: Type of animal (e.g., dogs, cats) to filter results."),
			}, "metadata_type"),
		},
		{
			Name:        "list_metadata_types",
			Description: "List all valid metadata types that can be used with list_metadata.",
			InputSchema: objectSchema(mcp.M{}),
		},
		{
			Name:        "list_breeds",
			Description: "List available breeds for a specific species.",
			InputSchema: objectSchema(mcp.M{
				"species": prop("string", "Type of animal (e.g., dogs, cats, rabbits)"),
			}, "species"),
		},
		{
			Name:        "get_breed",
			Description: "Get detailed information about a specific breed by its ID.",
			InputSchema: objectSchema(mcp.M{
				"breed_id": prop("string", "The unique ID of the breed."),
			}, "breed_id"),
		},
		{
			Name:        "get_animal_details",
			Description: "Get detailed information about a specific animal by its ID.",
			InputSchema: objectSchema(mcp.M{
				"animal_id": prop("string", "The unique ID of the animal."),
			}, "animal_id"),
		},
		{
			Name:        "get_contact_info",
			Description: "Get the primary contact method (email, phone, organization) for a specific animal.",
			InputSchema: objectSchema(mcp.M{
				"animal_id": prop("string", "The unique ID of the animal."),
			}, "animal_id"),
		},
		{
			Name:        "compare_animals",
			Description: "Compare up to 5 animals side-by-side by their IDs.",
			InputSchema: objectSchema(mcp.M{
				"animal_ids": mcp.M{
					"type":        "array",
					"items":       mcp.M{"type": "string"},
					"description": "List of animal IDs to compare (max 5).",
				},
			}, "animal_ids"),
		},
		{
			Name:        "get_organization_details",
			Description: "Get detailed information about a specific rescue organization by its ID.",
			InputSchema: objectSchema(mcp.M{
				"org_id": prop("string", "The unique ID of the organization."),
			}, "org_id"),
		},
		{
			Name:        "list_org_animals",
			Description: "List all animals available for adoption at a specific organization.",
			InputSchema: objectSchema(mcp.M{
				"org_id": prop("string", "The unique ID of the organization."),
			}, "org_id"),
		},
		{
			Name:        "search_organizations",
			Description: "Search for animal rescue organizations and shelters by location.",
			InputSchema: objectSchema(mcp.M{
				"postal_code": prop("string", "Zip code (e.g. 90210)"),
				"miles":       prop("integer", "Search radius (default 50)"),
				"query":       prop("string", "Name of the organization to search for (partial match)"),
			}),
		},
		{
			Name:        "search_adoptable_pets",
			Description: "Search for adoptable pets (dogs, cats, etc) by location and various traits.",
			InputSchema: objectSchema(mcp.M{
				"postal_code":        prop("string", "Zip code (e.g. 90210)"),
				"species":            prop("string", "Type of animal (dogs, cats, rabbits)"),
				"breeds":             prop("string", "Specific breed name (e.g. Golden Retriever)"),
				"miles":              prop("integer", "Search radius (default 50)"),
				"sex":                prop("string", "Sex of the animal (Male, Female)"),
				"age":                prop("string", "Age group (Baby, Young, Adult, Senior)"),
				"size":               prop("string", "Size group (Small, Medium, Large, X-Large)"),
				"good_with_children": prop("boolean", "Whether the pet is good with children."),
				"good_with_dogs":     prop("boolean", "Whether the pet is good with other dogs."),
				"good_with_cats":     prop("boolean", "Whether the pet is good with cats."),
				"house_trained":      prop("boolean", "Whether the pet is house trained."),
				"special_needs":      prop("boolean", "Whether the pet has special needs."),
				"needs_foster":       prop("boolean", "Whether the pet needs a foster home."),
				"color":              prop("string", "Filter by color (partial match)."),
				"pattern":            prop("string", "Filter by pattern (partial match)."),
				"sort_by": mcp.M{
					"type":        "string",
					"enum":        []string{"Newest", "Distance", "Random"},
					"description": "Sort order for results.",
				},
			}),
		},
		{
			Name:        "get_random_pet",
			Description: "Get a random adoptable pet (surpise me!).",
			InputSchema: objectSchema(mcp.M{
				"species": prop("string", "Optional: Type of animal (e.g. dogs, cats)"),
			}),
		},
		{
			Name:        "list_adopted_animals",
			Description: "List recently adopted animals (Success Stories) to see happy endings near you.",
			InputSchema: objectSchema(mcp.M{
				"postal_code": prop("string", "Zip code (e.g. 90210)"),
				"species":     prop("string", "Type of animal (dogs, cats, rabbits)"),
				"miles":       prop("integer", "Search radius (default 50)"),
			}),
		},
		{
			Name:        "inspect_tool",
			Description: "Discover available tools or get detailed schema for a specific tool.",
			InputSchema: objectSchema(mcp.M{
				"tool_name": prop("string", "The name of the tool to inspect. If omitted, lists all available tools."),
			}),
		},
	}
}
