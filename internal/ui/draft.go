package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/caddie/internal/assistant"
	"github.com/javiermolinar/caddie/internal/booking"
	"github.com/javiermolinar/caddie/internal/dateutil"
	"github.com/javiermolinar/caddie/internal/llm"
)

func (a *App) draftCmd() *cobra.Command {
	var (
		modelFlag string
		date      string
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "draft [request]",
		Short: "Draft a booking from a free text request",
		Long: `Use the booking assistant to turn a phone or email request into a
booking. The assistant sees the day's tee sheet and proposes a tee time
with open room for the whole group.

Interactive mode:
  After the assistant proposes a booking, you can:
  - [a]ccept: Book it
  - [m]odify: Tell the assistant what to change
  - [c]ancel: Exit without booking`,
		Example: `  caddie draft "Ana and two guests, Saturday around 9"
  caddie draft --date tomorrow "foursome, earliest after 10" --dry-run`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			day, err := dateutil.ParseDay(date, time.Now())
			if err != nil {
				return err
			}

			model := modelFlag
			if model == "" {
				model = a.config.Assistant.Model
			}
			provider := a.config.Assistant.Provider
			client, err := a.newClient(provider, model, a.config.Assistant.BaseURL)
			if err != nil {
				return fmt.Errorf("creating LLM client: %w", err)
			}

			drafter := assistant.New(client, a.repo, booking.NewService(a.repo, a.config.TeeTimes()), assistant.Options{
				Course:     a.config.Course.Name,
				Compact:    llm.IsLocal(provider),
				MaxRetries: a.config.Assistant.MaxRetries,
			})

			return runDraftLoop(cmd.Context(), drafter, day, strings.Join(args, " "), dryRun, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&modelFlag, "model", "", "LLM model to use (from config if not set)")
	cmd.Flags().StringVar(&date, "date", "", "Day whose sheet the assistant sees (default today)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the draft without booking")

	return cmd
}

func runDraftLoop(ctx context.Context, drafter *assistant.Drafter, day time.Time, input string, dryRun bool, in io.Reader, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	fmt.Fprintln(out, "Drafting booking...")
	result, err := drafter.DraftOn(ctx, day, input)
	if err != nil {
		return fmt.Errorf("drafting: %w", err)
	}

	reader := bufio.NewReader(in)
	for {
		displayDraft(out, result)

		if dryRun {
			fmt.Fprintln(out, "\n(Dry run - nothing booked)")
			return nil
		}

		fmt.Fprint(out, "\n[a]ccept / [m]odify / [c]ancel: ")
		choice, err := reader.ReadString('\n')
		if err != nil && choice == "" {
			return fmt.Errorf("reading input: %w", err)
		}

		switch strings.TrimSpace(strings.ToLower(choice)) {
		case "a", "accept":
			if result.HasValidationErrors() {
				fmt.Fprintln(out, "Cannot book: there are unresolved validation errors.")
				fmt.Fprintln(out, "Please [m]odify the draft or [c]ancel.")
				continue
			}
			b, err := drafter.Save(ctx, result)
			if err != nil {
				if errors.Is(err, assistant.ErrDraftInvalid) {
					fmt.Fprintf(out, "Cannot book: %v\n", err)
					continue
				}
				return fmt.Errorf("booking: %w", err)
			}
			fmt.Fprintf(out, "\nBooked #%d: %s on %s at %s\n",
				b.ID, formatGroup(b), b.Date.Format(dateutil.Layout), b.TeeTime)
			return nil

		case "m", "modify":
			fmt.Fprint(out, "What would you like to change? ")
			feedback, _ := reader.ReadString('\n')
			feedback = strings.TrimSpace(feedback)
			if feedback == "" {
				fmt.Fprintln(out, "No change given, showing current draft...")
				continue
			}

			fmt.Fprintln(out, "\nRedrafting...")
			result, err = drafter.Refine(ctx, feedback)
			if err != nil {
				return fmt.Errorf("redrafting: %w", err)
			}

		case "c", "cancel":
			drafter.Reset()
			fmt.Fprintln(out, "Draft discarded.")
			return nil

		default:
			fmt.Fprintln(out, "Invalid choice. Please enter 'a', 'm', or 'c'.")
		}
	}
}

func displayDraft(out io.Writer, r *assistant.Result) {
	fmt.Fprintln(out)
	date := r.Date
	if d, err := time.Parse(dateutil.Layout, r.Date); err == nil {
		date = d.Format("Monday, January 2, 2006")
	}
	fmt.Fprintf(out, "%s\n", formatHeader(fmt.Sprintf("Draft: %s at %s", date, r.TeeTime)))

	if len(r.Players) == 0 {
		fmt.Fprintln(out, "  No players proposed.")
	}
	for _, p := range r.Players {
		line := "  - " + p.Name
		if p.Kind != "" {
			line += " (" + p.Kind + ")"
		}
		if p.ID != "" {
			line += " #" + p.ID
		}
		fmt.Fprintln(out, line)
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintln(out, "\nWarnings:")
		for _, w := range r.Warnings {
			fmt.Fprintf(out, "  ! %s\n", formatWarning(w))
		}
	}

	if r.HasValidationErrors() {
		fmt.Fprintf(out, "\nValidation errors (after %d attempts):\n", r.Attempts)
		for _, ve := range r.ValidationErrors {
			fmt.Fprintf(out, "  - %s: %s\n", ve.Field, ve.Message)
		}
	}
}
