// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/mkweon/content-engine/internal/content"
)

var keywordCmd = &cobra.Command{
	Use:   "keyword",
	Short: "Expand a topic keyword into related search keywords",
}

var keywordSuggestCmd = &cobra.Command{
	Use:   "suggest [keyword]",
	Short: "Suggest related keywords with trend hints",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printJSON(content.SuggestKeywords(args[0]))
	},
}

func init() {
	keywordCmd.AddCommand(keywordSuggestCmd)
	rootCmd.AddCommand(keywordCmd)
}
