package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ish/pocketledger/internal/adapter/http/dto"
	"github.com/ish/pocketledger/internal/client"
	"github.com/ish/pocketledger/internal/settings"
	"github.com/ish/pocketledger/internal/view"
)

var (
	serverURL    string
	settingsPath string
	timeout      time.Duration
)

// shell owns one instance of every view-model, wired the same way the app
// does it.
type shell struct {
	settings *settings.Store
	selected *view.SelectedDate
	bus      *view.Bus
	list     *view.ListController
	quickAdd *view.QuickAdd
	api      *client.Client
	logger   zerolog.Logger
}

func newShell() *shell {
	store := settings.New(settingsPath)

	url := serverURL
	if url == "" {
		url = store.ServerURL()
	}

	api := client.New(url,
		client.WithSession("session", store.SessionToken()),
	)

	logger := zerolog.New(os.Stderr).Level(zerolog.WarnLevel).With().Timestamp().Logger()

	selected := view.NewSelectedDate()
	list := view.NewListController(api, selected,
		view.WithAnimator(view.TickerAnimator{}),
		view.WithListLogger(logger),
	)
	quickAdd := view.NewQuickAdd(api, store, list, logger)

	return &shell{
		settings: store,
		selected: selected,
		bus:      view.NewBus(),
		list:     list,
		quickAdd: quickAdd,
		api:      api,
		logger:   logger,
	}
}

func main() {
	home, _ := os.UserHomeDir()
	defaultSettings := filepath.Join(home, ".pocketledger.yaml")

	rootCmd := &cobra.Command{
		Use:   "pocketledger",
		Short: "PocketLedger CLI",
		Long:  `A command line client for the PocketLedger personal finance API.`,
	}

	rootCmd.PersistentFlags().StringVar(&serverURL, "url", "", "Server URL (defaults to the configured one)")
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", defaultSettings, "Settings file path")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	rootCmd.AddCommand(
		newListCmd(),
		newTodayCmd(),
		newAddCmd(),
		newShowCmd(),
		newEditCmd(),
		newDeleteCmd(),
		newCurrencyCmd(),
		newSessionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newListCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			sh := newShell()

			if date != "" {
				day, err := time.ParseInLocation("2006-01-02", date, time.Local)
				if err != nil {
					return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
				}
				sh.selected.Set(day)
			}

			return runList(sh)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to list (YYYY-MM-DD, default today)")

	return cmd
}

func newTodayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "List today's transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(newShell())
		},
	}
}

func runList(sh *shell) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	_ = sh.list.Refresh(ctx)

	if banner := sh.list.ErrorBanner(); banner != "" {
		fmt.Println(banner)
		return nil
	}

	items := sh.list.Items()
	if len(items) == 0 {
		fmt.Println("No transactions.")
		return nil
	}

	for _, tx := range items {
		category := "Uncategorized"
		if tx.Category != nil && *tx.Category != "" {
			category = *tx.Category
		}
		sign := "-"
		if tx.Type == "income" {
			sign = "+"
		}
		fmt.Printf("%-26s  %s%10s %s  %-12s  %s\n", tx.ID, sign, tx.Amount, tx.Currency, category, tx.Title)
	}

	totals := sh.list.Totals()
	fmt.Printf("\nincome %s  expense %s  net %s\n",
		totals.Income.StringFixed(2), totals.Expense.StringFixed(2), totals.Net.StringFixed(2))

	return nil
}

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <text>",
		Short: "Add a transaction from free text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sh := newShell()

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			text := ""
			for i, arg := range args {
				if i > 0 {
					text += " "
				}
				text += arg
			}

			sh.quickAdd.Submit(ctx, text)

			if banner := sh.quickAdd.ErrorBanner(); banner != "" {
				fmt.Println(banner)
				return nil
			}

			fmt.Println("Added.")
			return runList(sh)
		},
	}
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <payload>",
		Short: "Show a transaction from its navigation payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sh := newShell()

			d := view.NewDetail(args[0], sh.bus)
			defer d.Close()

			if d.NotFound() {
				fmt.Println("Transaction not found")
				return nil
			}

			tx := d.Transaction()
			fmt.Printf("Title:     %s\n", tx.Title)
			fmt.Printf("Amount:    %s%s\n", d.CurrencySymbol(), d.AmountLabel())
			fmt.Printf("Type:      %s\n", tx.Type)
			fmt.Printf("Category:  %s\n", d.CategoryLabel())
			fmt.Printf("Date:      %s\n", d.OccurredAtLabel())
			if tx.Note != nil && *tx.Note != "" {
				fmt.Printf("Note:      %s\n", *tx.Note)
			}
			return nil
		},
	}
}

func newEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <field> <payload> <value>",
		Short: "Edit one field of a transaction",
		Long:  "Fields: title, amount, type, category, date, note, currency.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			sh := newShell()

			field := view.Field(args[0])
			switch field {
			case view.FieldTitle, view.FieldAmount, view.FieldType,
				view.FieldCategory, view.FieldDate, view.FieldNote, view.FieldCurrency:
			default:
				return fmt.Errorf("unknown field %q", args[0])
			}

			saved := false
			sh.bus.Subscribe(func(tx *dto.TransactionResponse) {
				saved = true
				fmt.Printf("Saved. New payload:\n%s\n", view.EncodeNavParam(tx))
			})

			editor, err := view.NewFieldEditor(sh.api, sh.bus, args[1], field)
			if err != nil {
				fmt.Println("Transaction not found")
				return nil
			}

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			editor.Save(ctx, args[2])

			if !saved {
				fmt.Println("Couldn't save. Please try again.")
			}
			return nil
		},
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sh := newShell()

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			sh.list.Delete(ctx, args[0])
			fmt.Println("Deleted.")
			return nil
		},
	}
}

func newCurrencyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "currency",
		Short: "Show or set the preferred currency",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(newShell().settings.Currency())
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <code>",
		Short: "Set the preferred currency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return newShell().settings.SetCurrency(args[0])
		},
	})

	return cmd
}

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage the stored session token",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <token>",
		Short: "Store the session token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return newShell().settings.SetSessionToken(args[0])
		},
	})

	return cmd
}
