package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vytor/lumina/internal/flashcard"
	"github.com/vytor/lumina/internal/logger"
	"github.com/vytor/lumina/internal/repository/sqlite"
	"github.com/vytor/lumina/internal/services"
)

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "Show the flashcards a profile has due for review",
	RunE: func(cmd *cobra.Command, args []string) error {
		profileID, _ := cmd.Flags().GetString("profile")
		limit, _ := cmd.Flags().GetInt("limit")

		cfg, log, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		ctx := logger.NewContext(cmd.Context(), log)

		database, err := openDB(ctx, log, cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		profiles := services.NewProfileService(sqlite.NewProfileRepository(database.DB), flashcard.SystemClock)
		profile, err := profiles.GetProfile(ctx, profileID)
		if err != nil {
			return err
		}

		flashcards := services.NewFlashcardService(
			sqlite.NewFlashcardRepository(database.DB),
			sqlite.NewStudyRepository(database.DB),
			flashcard.SystemClock,
		)
		cards, total, err := flashcards.ListFlashcards(ctx, profile.ID, services.DeckQuery{DueOnly: true, Limit: limit})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s has %d card(s) due\n", profile.Username, total)
		if len(cards) == 0 {
			return nil
		}

		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tFRONT\tINTERVAL\tEASE\tDUE")
		for _, c := range cards {
			fmt.Fprintf(tw, "%s\t%s\t%dd\t%.2f\t%s\n", c.ID, truncate(c.Front, 48), c.Interval, c.Ease,
				c.NextReviewDate.Local().Format("2006-01-02 15:04"))
		}
		return tw.Flush()
	},
}

func init() {
	dueCmd.Flags().String("profile", "", "Profile ID")
	dueCmd.Flags().Int("limit", 20, "Maximum number of cards to list")
	_ = dueCmd.MarkFlagRequired("profile")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
