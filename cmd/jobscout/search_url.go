package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobscout/internal/searchurl"
)

var searchURLCmd = &cobra.Command{
	Use:   "search-url",
	Short: "Build a LinkedIn job search URL",
	RunE:  runSearchURLCmd,
}

var (
	urlKeywords   string
	urlLocation   string
	urlGeoID      string
	urlTimePosted string
	urlExperience int
	urlSortBy     string
)

func init() {
	defaults := searchurl.DefaultParams()
	searchURLCmd.Flags().StringVarP(&urlKeywords, "keywords", "k", defaults.Keywords, "Search keywords")
	searchURLCmd.Flags().StringVarP(&urlLocation, "location", "l", defaults.Location, "Location name")
	searchURLCmd.Flags().StringVar(&urlGeoID, "geo-id", defaults.GeoID, "LinkedIn geo ID for the location")
	searchURLCmd.Flags().StringVar(&urlTimePosted, "time-posted", defaults.TimePosted, "Posted-within filter (r86400 day, r604800 week, r2592000 month, empty any)")
	searchURLCmd.Flags().IntVar(&urlExperience, "experience", defaults.ExperienceLevel, "Experience level (1 internship through 6 executive)")
	searchURLCmd.Flags().StringVar(&urlSortBy, "sort-by", defaults.SortBy, "Sort order: R relevance, DD date posted")

	rootCmd.AddCommand(searchURLCmd)
}

func runSearchURLCmd(cmd *cobra.Command, args []string) error {
	params := searchurl.DefaultParams()
	params.Keywords = urlKeywords
	params.Location = urlLocation
	params.GeoID = urlGeoID
	params.TimePosted = urlTimePosted
	params.ExperienceLevel = urlExperience
	params.SortBy = urlSortBy

	fmt.Println(params.Build())
	return nil
}
