package cmd

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spigell/ats-scorer/internal/taxonomy"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "List the skills vocabulary grouped by category",
	Run: func(cmd *cobra.Command, _ []string) {
		name, _ := cmd.Flags().GetString("category")
		if err := printSkills(cmd.OutOrStdout(), taxonomy.Default(), name); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(skillsCmd)

	skillsCmd.Flags().String("category", "", "print only this category")
}

func printSkills(w io.Writer, tax *taxonomy.Taxonomy, category string) error {
	categories := taxonomy.Categories
	if category != "" {
		c, ok := taxonomy.ParseCategory(category)
		if !ok {
			return fmt.Errorf("unknown category %q", category)
		}
		categories = []taxonomy.Category{c}
	}

	for _, c := range categories {
		skills := tax.ByCategory(c)
		if len(skills) == 0 {
			continue
		}

		fmt.Fprintf(w, "%s (%d):\n", c, len(skills))
		for _, skill := range skills {
			if len(skill.Aliases) == 0 {
				fmt.Fprintf(w, "  - %s\n", skill.Name)
				continue
			}
			fmt.Fprintf(w, "  - %s (also: %s)\n", skill.Name, strings.Join(skill.Aliases, ", "))
		}
	}

	return nil
}
