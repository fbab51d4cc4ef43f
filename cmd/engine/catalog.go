package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dnd-combat-engine/internal/catalog"
	"github.com/KirkDiggler/dnd-combat-engine/internal/clients/dnd5e"
)

var (
	importWeapons []string
	importSpells  []string
	importOut     string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and extend the weapon and spell catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog weapon and spell keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.LoadWithOverride(cfg.Catalog.Path)
		if err != nil {
			return err
		}
		cmd.Println("Weapons:")
		for _, key := range cat.Weapons() {
			cmd.Println("  " + key)
		}
		cmd.Println("Spells:")
		for _, key := range cat.Spells() {
			cmd.Println("  " + key)
		}
		return nil
	},
}

var catalogImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import weapons and spells from the D&D 5e API",
	Long:  `Fetches the given weapons and spells from the D&D 5e API, merges them over the catalog and writes the result as YAML.`,
	RunE:  runCatalogImport,
}

func init() {
	catalogImportCmd.Flags().StringSliceVar(&importWeapons, "weapon", nil, "weapon key to import")
	catalogImportCmd.Flags().StringSliceVar(&importSpells, "spell", nil, "spell key to import")
	catalogImportCmd.Flags().StringVarP(&importOut, "out", "o", "", "file to write, stdout when empty")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogImportCmd)
}

func runCatalogImport(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, err := dnd5e.New(&dnd5e.Config{
		HttpClient: &http.Client{Timeout: 30 * time.Second},
		BaseURL:    cfg.DND5E.BaseURL,
	})
	if err != nil {
		return err
	}

	cat, err := catalog.LoadWithOverride(cfg.Catalog.Path)
	if err != nil {
		return err
	}

	result, err := cat.Import(ctx, client, importWeapons, importSpells)
	if err != nil {
		return err
	}
	cmd.PrintErrf("Imported %d weapons and %d spells\n", len(result.Weapons), len(result.Spells))

	if importOut == "" {
		return cat.Export(cmd.OutOrStdout())
	}
	f, err := os.Create(importOut)
	if err != nil {
		return err
	}
	defer f.Close()
	return cat.Export(f)
}
