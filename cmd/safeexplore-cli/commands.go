package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newDocumentsCmd(root *rootOptions) *cobra.Command {
	var search, status, category, priority, sortKey, order, asOf string
	cmd := &cobra.Command{
		Use:   "documents",
		Short: "List document requirements",
		Long: `List document requirements, earliest due date first by default.

Status accepts not-started, in-progress, completed, verified, overdue or all.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := root.client()
			if err != nil {
				return err
			}
			defer c.Close()

			q := c.Documents().Search(search).Status(status).Category(category).
				Priority(priority).SortBy(sortKey)
			applyOrder(order, q.Asc, q.Desc)
			if asOf != "" {
				loc, err := root.location()
				if err != nil {
					return err
				}
				t, err := time.ParseInLocation("2006-01-02", asOf, loc)
				if err != nil {
					return fmt.Errorf("--as-of must be YYYY-MM-DD: %w", err)
				}
				q.AsOf(t)
			}

			res, err := q.Do(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			t := newTable(out, "ID", "NAME", "CATEGORY", "STATUS", "PRIORITY", "DUE")
			for _, d := range res.Items {
				due := "-"
				if d.DueDate != nil {
					due = d.DueDate.Format("2006-01-02")
				}
				t.row(d.ID, d.Name, d.Category, string(d.Status), string(d.Priority), due)
			}
			if err := t.flush(); err != nil {
				return err
			}
			footer(out, len(res.Items), res.Total, res.SortKey, res.SortApplied)
			return nil
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "Match name and description")
	cmd.Flags().StringVar(&status, "status", "", "Status filter")
	cmd.Flags().StringVar(&category, "category", "", "Category filter")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority filter (high, medium, low)")
	cmd.Flags().StringVar(&sortKey, "sort", "", "Sort key (due-date, priority, status, name, category)")
	cmd.Flags().StringVar(&order, "order", "", "asc or desc")
	cmd.Flags().StringVar(&asOf, "as-of", "", "Evaluate overdue as of this date (YYYY-MM-DD)")
	return cmd
}

func newExperiencesCmd(root *rootOptions) *cobra.Command {
	var (
		search, sortKey, order               string
		categories, prices, durations, feats []string
		minRating, maxDistance               float64
	)
	cmd := &cobra.Command{
		Use:   "experiences",
		Short: "List tourist experiences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := root.client()
			if err != nil {
				return err
			}
			defer c.Close()

			q := c.Experiences().Search(search).Categories(categories...).PriceRanges(prices...).
				Durations(durations...).Features(feats...).SortBy(sortKey)
			if cmd.Flags().Changed("min-rating") {
				q.MinRating(minRating)
			}
			if cmd.Flags().Changed("max-distance") {
				q.MaxDistance(maxDistance)
			}
			applyOrder(order, q.Asc, q.Desc)

			res, err := q.Do(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			t := newTable(out, "ID", "TITLE", "CATEGORY", "RATING", "DISTANCE_KM", "PRICE", "DURATION")
			for _, e := range res.Items {
				t.row(e.ID, e.Title, e.Category, formatFloat(e.Rating), formatFloat(e.DistanceKm),
					string(e.PriceRange), e.Duration)
			}
			if err := t.flush(); err != nil {
				return err
			}
			footer(out, len(res.Items), res.Total, res.SortKey, res.SortApplied)
			return nil
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "Match title, description and tags")
	cmd.Flags().StringSliceVar(&categories, "category", nil, "Categories (any of)")
	cmd.Flags().StringSliceVar(&prices, "price", nil, "Price ranges (free, budget, moderate, premium)")
	cmd.Flags().StringSliceVar(&durations, "duration", nil, "Duration buckets (quick, half-day, full-day, multi-day)")
	cmd.Flags().StringSliceVar(&feats, "feature", nil, "Required features (bookable, accessible, indoor, offers)")
	cmd.Flags().Float64Var(&minRating, "min-rating", 0, "Minimum rating")
	cmd.Flags().Float64Var(&maxDistance, "max-distance", 0, "Maximum distance in km")
	cmd.Flags().StringVar(&sortKey, "sort", "", "Sort key (recommended, rating, distance, price, name)")
	cmd.Flags().StringVar(&order, "order", "", "asc or desc")
	return cmd
}

func newServicesCmd(root *rootOptions) *cobra.Command {
	var (
		search, category, sortKey, order string
		languages                        []string
		openNow                          bool
	)
	cmd := &cobra.Command{
		Use:   "services",
		Short: "List local services",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := root.client()
			if err != nil {
				return err
			}
			defer c.Close()

			q := c.Services().Search(search).Category(category).Languages(languages...).SortBy(sortKey)
			if cmd.Flags().Changed("open") {
				q.OpenNow(openNow)
			}
			applyOrder(order, q.Asc, q.Desc)

			res, err := q.Do(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			t := newTable(out, "ID", "NAME", "CATEGORY", "DISTANCE_KM", "RATING", "OPEN", "PHONE")
			for _, s := range res.Items {
				t.row(s.ID, s.Name, s.Category, formatFloat(s.DistanceKm), formatFloat(s.Rating),
					strconv.FormatBool(s.Open), s.Phone)
			}
			if err := t.flush(); err != nil {
				return err
			}
			footer(out, len(res.Items), res.Total, res.SortKey, res.SortApplied)
			return nil
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "Match name and category")
	cmd.Flags().StringVar(&category, "category", "", "Category filter")
	cmd.Flags().StringSliceVar(&languages, "language", nil, "Spoken languages (any of)")
	cmd.Flags().BoolVar(&openNow, "open", false, "Only services that are open (or closed with --open=false)")
	cmd.Flags().StringVar(&sortKey, "sort", "", "Sort key (distance, rating, name)")
	cmd.Flags().StringVar(&order, "order", "", "asc or desc")
	return cmd
}

func newLawsCmd(root *rootOptions) *cobra.Command {
	var (
		search  string
		filters []string
	)
	cmd := &cobra.Command{
		Use:   "laws",
		Short: "Show the local laws guide",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := root.client()
			if err != nil {
				return err
			}
			defer c.Close()

			g, err := c.Laws().Search(search).Filter(filters...).Do(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			t := newTable(out, "GROUP", "ID", "TITLE", "SEVERITY")
			for _, gr := range g.Groups {
				for _, l := range gr.Laws {
					t.row(gr.Title, l.ID, l.Title, string(l.Severity))
				}
			}
			if err := t.flush(); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "\n%d laws, %d critical\n", g.TotalLaws, g.CriticalLaws)
			return nil
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "Match title, description and penalties")
	cmd.Flags().StringSliceVar(&filters, "filter", nil, "Severities or categories (any of)")
	return cmd
}

func newCountriesCmd(root *rootOptions) *cobra.Command {
	var search, continent, featured, sortKey, order string
	cmd := &cobra.Command{
		Use:   "countries",
		Short: "List destination countries",
		Long: `List destination countries, alphabetical by name by default.

With --featured, show the featured cities for a user type instead
(tourist, or immigrant for the relocation picks).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := root.client()
			if err != nil {
				return err
			}
			defer c.Close()

			out := cmd.OutOrStdout()
			if cmd.Flags().Changed("featured") {
				dests, err := c.FeaturedDestinations(cmd.Context(), featured)
				if err != nil {
					return err
				}
				t := newTable(out, "COUNTRY", "CITY", "DESCRIPTION", "HIGHLIGHTS")
				for _, d := range dests {
					t.row(d.Country, d.City, d.Description, strings.Join(d.Highlights, ", "))
				}
				return t.flush()
			}

			q := c.Countries().Search(search).Continent(continent).SortBy(sortKey)
			applyOrder(order, q.Asc, q.Desc)
			res, err := q.Do(cmd.Context())
			if err != nil {
				return err
			}
			t := newTable(out, "CODE", "NAME", "CONTINENT", "CITIES")
			for _, ct := range res.Items {
				t.row(ct.Code, ct.Name, ct.Continent, strings.Join(ct.Cities, ", "))
			}
			if err := t.flush(); err != nil {
				return err
			}
			footer(out, len(res.Items), res.Total, res.SortKey, res.SortApplied)
			return nil
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "Match name or code")
	cmd.Flags().StringVar(&continent, "continent", "", "Continent filter")
	cmd.Flags().StringVar(&featured, "featured", "", "Show featured cities for this user type")
	cmd.Flags().StringVar(&sortKey, "sort", "", "Sort key (name, code, continent)")
	cmd.Flags().StringVar(&order, "order", "", "asc or desc")
	return cmd
}

func newPhrasesCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "phrases [language]",
		Short: "Show emergency phrases",
		Long: `Show the emergency phrases for a language, given as a name (Spanish)
or a locale (es-ES). Without a language, list the available phrase books.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.client()
			if err != nil {
				return err
			}
			defer c.Close()

			out := cmd.OutOrStdout()
			if len(args) == 0 {
				books, err := c.EmergencyPhrases(cmd.Context())
				if err != nil {
					return err
				}
				t := newTable(out, "LANGUAGE", "LOCALE", "PHRASES")
				for _, b := range books {
					t.row(b.Language, b.Locale, strconv.Itoa(len(b.Phrases)))
				}
				return t.flush()
			}

			b, err := c.PhraseBook(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			t := newTable(out, "ENGLISH", "TRANSLATION", "PRONUNCIATION")
			for _, p := range b.Phrases {
				t.row(p.English, p.Translation, p.Pronunciation)
			}
			return t.flush()
		},
	}
}

func newAskCmd(root *rootOptions) *cobra.Command {
	var emergency bool
	cmd := &cobra.Command{
		Use:   "ask <message>",
		Short: "Ask the help assistant",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.client()
			if err != nil {
				return err
			}
			defer c.Close()

			r, err := c.Assistant().Emergency(emergency).Ask(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "[%s] %s\n\n", r.Topic, r.Content)
			t := newTable(out, "ACTION", "LABEL")
			for _, a := range r.QuickActions {
				t.row(a.Action, a.Label)
			}
			return t.flush()
		},
	}
	cmd.Flags().BoolVar(&emergency, "emergency", false, "Render the reply in emergency mode")
	return cmd
}

// applyOrder calls asc or desc for an explicit --order; anything else keeps the key default.
func applyOrder[T any](order string, asc, desc func() T) {
	switch strings.ToLower(order) {
	case "asc":
		asc()
	case "desc":
		desc()
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
