package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"reelguard/internal/adapter/imdb"
	"reelguard/internal/di"
	"reelguard/internal/domain"
	"reelguard/internal/infra/config"
	"reelguard/internal/infra/logger"
	"reelguard/internal/usecase"
)

func main() {
	cfg := config.Load()
	log := logger.New()
	components := di.NewApplicationComponents(cfg, log)

	root := &cobra.Command{
		Use:   "reelctl",
		Short: "Operational CLI for the movie recommendation service",
	}

	scrapeCmd := &cobra.Command{
		Use:   "scrape <imdb-url>",
		Short: "Scrape movie facts from an IMDb title page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			canonical, ok := imdb.NormalizeURL(args[0])
			if !ok {
				return fmt.Errorf("not a valid IMDb title URL: %s", args[0])
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(cfg.Scrape.TimeoutSeconds)*time.Second)
			defer cancel()

			info := components.Extractor.MovieInfo(ctx, canonical)
			return printJSON(domain.MovieInfoWithURL{MovieInfo: info, URL: canonical})
		},
	}

	classifyCmd := &cobra.Command{
		Use:   "classify <content>",
		Short: "Run the content-safety classifier on a string",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contentType, _ := cmd.Flags().GetString("type")

			verdict, err := components.Guardrail.Check(cmd.Context(), usecase.GuardrailRequest{
				Content:     args[0],
				ContentType: domain.ContentType(contentType),
			})
			if err != nil {
				return err
			}
			return printJSON(verdict)
		},
	}
	classifyCmd.Flags().String("type", string(domain.ContentTypeDescription),
		"content type: description, movie_title, or recommendation")

	recommendCmd := &cobra.Command{
		Use:   "recommend <description>",
		Short: "Request one recommendation through the full pipeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			urls, _ := cmd.Flags().GetStringSlice("imdb-url")

			outcome, err := components.Recommend.Execute(cmd.Context(), usecase.RecommendInput{
				Description: args[0],
				IMDbURLs:    urls,
			})
			if err != nil {
				return err
			}
			return printJSON(outcome)
		},
	}
	recommendCmd.Flags().StringSlice("imdb-url", nil, "IMDb reference URL (repeatable)")

	root.AddCommand(scrapeCmd, classifyCmd, recommendCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
