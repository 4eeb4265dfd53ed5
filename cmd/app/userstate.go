package main

import (
	"fmt"
	"strings"

	"github.com/AbdulWasayUl/country-explorer/internal/logger"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

// -- favorites --

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "List favorite countries",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		store, err := openStore(ctx)
		if err != nil {
			return err
		}

		favorites := store.Favorites()
		if len(favorites) == 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), "No favorites yet.")
			return nil
		}
		formatCountryList(cmd.OutOrStdout(), favorites)
		return nil
	},
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add <code|name>",
	Short: "Add a country to favorites",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		record, err := resolveCountry(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}

		store, err := openStore(ctx)
		if err != nil {
			return err
		}

		if err := store.AddFavorite(ctx, record); err != nil {
			return eris.Wrap(err, "favorites add")
		}
		logger.Info("Added %s to favorites", record.Name.Common)
		return nil
	},
}

var favoritesRemoveCmd = &cobra.Command{
	Use:   "remove <code>",
	Short: "Remove a country from favorites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := openStore(ctx)
		if err != nil {
			return err
		}

		code := strings.ToUpper(args[0])
		if !store.IsFavorite(code) {
			logger.Warn("%s is not a favorite", code)
		}
		if err := store.RemoveFavorite(ctx, code); err != nil {
			return eris.Wrap(err, "favorites remove")
		}
		return nil
	},
}

// -- recent --

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently viewed countries, most recent first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		store, err := openStore(ctx)
		if err != nil {
			return err
		}

		recent := store.RecentlyViewed()
		if len(recent) == 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), "Nothing viewed yet.")
			return nil
		}
		formatCountryList(cmd.OutOrStdout(), recent)
		return nil
	},
}

// -- theme --

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Print the current theme",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		store, err := openStore(ctx)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), store.Theme())
		return nil
	},
}

var themeToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Switch between light and dark",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		store, err := openStore(ctx)
		if err != nil {
			return err
		}

		theme, err := store.ToggleTheme(ctx)
		if err != nil {
			return eris.Wrap(err, "theme toggle")
		}
		fmt.Fprintln(cmd.OutOrStdout(), theme)
		return nil
	},
}

func init() {
	favoritesCmd.AddCommand(favoritesAddCmd, favoritesRemoveCmd)
	themeCmd.AddCommand(themeToggleCmd)
	rootCmd.AddCommand(favoritesCmd, recentCmd, themeCmd)
}
