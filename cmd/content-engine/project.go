// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects (create, list, show, delete)",
	Long: `Project manages the file-based project store. Each project owns a
directory with project.json, per-item files, and generated images.`,
}

var projectCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new project",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := projectStore()
		if err != nil {
			return err
		}
		p, err := s.Create(strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Printf("created %s (%s)\n", p.Name, p.ID)
		return nil
	},
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects, most recently updated first",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := projectStore()
		if err != nil {
			return err
		}
		metas, err := s.List()
		if err != nil {
			return err
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(metas)
		}

		if len(metas) == 0 {
			fmt.Println("No projects found.")
			return nil
		}
		fmt.Printf("%-18s  %-30s  %-20s  %-8s  %-8s  %s\n",
			"ID", "Name", "Updated", "Research", "Content", "Images")
		fmt.Println(strings.Repeat("-", 100))
		for _, m := range metas {
			name := m.Name
			if len(name) > 30 {
				name = name[:27] + "..."
			}
			fmt.Printf("%-18s  %-30s  %-20s  %-8d  %-8d  %d\n",
				m.ID, name, m.UpdatedAt.Format("2006-01-02 15:04:05"),
				m.ResearchCount, m.ContentCount, m.ImageCount)
		}
		return nil
	},
}

var projectShowCmd = &cobra.Command{
	Use:   "show [project-id]",
	Short: "Print a project aggregate as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := projectStore()
		if err != nil {
			return err
		}
		p, err := s.Load(args[0])
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	},
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete [project-id]",
	Short: "Delete a project and its files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := projectStore()
		if err != nil {
			return err
		}
		if err := s.Delete(args[0]); err != nil {
			return err
		}
		fmt.Printf("deleted %s\n", args[0])
		return nil
	},
}

func init() {
	projectListCmd.Flags().Bool("json", false, "output as JSON")

	projectCmd.AddCommand(projectCreateCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectShowCmd)
	projectCmd.AddCommand(projectDeleteCmd)

	rootCmd.AddCommand(projectCmd)
}
