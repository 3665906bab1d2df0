// Command bettersplit composes and submits a batch of group expenses
// described in a JSON file to the BetterSplit API.
//
// Usage:
//
//	bettersplit -batch expenses.json [-group Trip] [-dry-run]
//
// Environment (a .env file is honored):
//
//	BETTERSPLIT_API_URL:   API root (default http://localhost:8000)
//	BETTERSPLIT_API_TOKEN: auth token
//	LOG_LEVEL:             debug, info, warn, error (default info)
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/joho/godotenv"

	"github.com/SajjanPaudel/bettersplit/internal/api"
	"github.com/SajjanPaudel/bettersplit/internal/api/memory"
	"github.com/SajjanPaudel/bettersplit/internal/api/rest"
	"github.com/SajjanPaudel/bettersplit/internal/composer"
	"github.com/SajjanPaudel/bettersplit/internal/config"
	"github.com/SajjanPaudel/bettersplit/internal/expr"
	"github.com/SajjanPaudel/bettersplit/internal/models"
	"github.com/SajjanPaudel/bettersplit/pkg/logging"
)

// batchFile is the on-disk description of a batch. Members may be
// referenced by username or ID; a share without an amount is left to
// auto-distribution, one with an amount is pinned.
type batchFile struct {
	Group    string `json:"group"` // name or ID; -group overrides
	Expenses []struct {
		Name   string      `json:"name"`
		Amount string      `json:"amount"` // plain number or arithmetic like "40+60"
		Date   string      `json:"date"`   // ISO date, defaults to today
		Payers []shareSpec `json:"payers"`
		Splits []shareSpec `json:"splits"`
	} `json:"expenses"`
}

type shareSpec struct {
	User   string `json:"user"`
	Amount string `json:"amount,omitempty"`
}

func main() {
	batchPath := flag.String("batch", "", "path to the batch JSON file")
	groupFlag := flag.String("group", "", "group name or ID (overrides the batch file)")
	dryRun := flag.Bool("dry-run", false, "compose and validate, but do not submit")
	strict := flag.Bool("strict-splits", false, "also check split sums against totals")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		// No .env is fine; plain environment variables still apply.
		slog.Debug("no .env file loaded", "error", err)
	}
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	if *batchPath == "" {
		slog.Error("missing required -batch flag")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(cfg, *batchPath, *groupFlag, *dryRun, *strict); err != nil {
		slog.Error("batch not submitted", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, batchPath, groupFlag string, dryRun, strict bool) error {
	ctx := context.Background()

	raw, err := os.ReadFile(batchPath)
	if err != nil {
		return err
	}
	var file batchFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return err
	}

	client := rest.New(cfg.APIBaseURL, cfg.APIToken)
	user, err := client.CurrentUser(ctx)
	if err != nil {
		return err
	}
	groups, err := client.Groups(ctx)
	if err != nil {
		return err
	}
	slog.Info("connected", "user", user.Username, "groups", len(groups))

	var submitter api.ExpenseSubmitter = client
	var recorder *memory.Client
	if dryRun {
		recorder = memory.New(*user, groups)
		submitter = recorder
	}

	c := composer.New(*user, groups, submitter)
	c.SetStrictSplits(strict)

	groupRef := file.Group
	if groupFlag != "" {
		groupRef = groupFlag
	}
	group := findGroup(groups, groupRef)
	if group == nil {
		return &unknownRefError{kind: "group", ref: groupRef}
	}
	if err := c.SelectGroup(group.ID); err != nil {
		return err
	}

	for i, e := range file.Expenses {
		if i > 0 {
			c.AddRow()
		}
		if err := c.SetName(i, e.Name); err != nil {
			return err
		}
		date := e.Date
		if date == "" {
			date = time.Now().Format("2006-01-02")
		}
		if err := c.SetDate(i, date); err != nil {
			return err
		}
		if err := c.SetAmount(i, amountInput(e.Amount)); err != nil {
			return err
		}

		// An explicit payer list replaces the default payer.
		if len(e.Payers) > 0 {
			for _, m := range c.Batch().Drafts[i].Payers.Members() {
				if err := c.TogglePayer(i, m); err != nil {
					return err
				}
			}
		}
		if err := applyShares(c, group, i, e.Payers, c.TogglePayer, c.SetPayerAmount); err != nil {
			return err
		}
		if err := applyShares(c, group, i, e.Splits, c.ToggleSplit, c.SetSplitAmount); err != nil {
			return err
		}
	}

	if err := c.Submit(ctx); err != nil {
		return err
	}

	if dryRun {
		created := recorder.Created()
		out, err := json.MarshalIndent(created, "", "  ")
		if err != nil {
			return err
		}
		os.Stdout.Write(append(out, '\n'))
		slog.Info("dry run complete", "expenses", len(created))
		return nil
	}
	slog.Info("batch submitted", "expenses", len(file.Expenses))
	return nil
}

// amountInput appends the trailing space that triggers the arithmetic
// shorthand when the configured amount looks like an expression.
func amountInput(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if expr.IsCandidate(trimmed) {
		return trimmed + " "
	}
	return trimmed
}

func applyShares(c *composer.Composer, group *models.Group, i int, shares []shareSpec,
	toggle func(int, string) error, pin func(int, string, string) error) error {
	for _, s := range shares {
		member := findMember(group, s.User)
		if member == "" {
			return &unknownRefError{kind: "member", ref: s.User}
		}
		if err := toggle(i, member); err != nil {
			return err
		}
		if s.Amount != "" {
			if err := pin(i, member, s.Amount); err != nil {
				return err
			}
		}
	}
	return nil
}

func findGroup(groups []models.Group, ref string) *models.Group {
	for i := range groups {
		if groups[i].ID == ref || groups[i].Name == ref {
			return &groups[i]
		}
	}
	return nil
}

func findMember(g *models.Group, ref string) string {
	for _, m := range g.Members {
		if m.ID == ref || m.Username == ref {
			return m.ID
		}
	}
	return ""
}

type unknownRefError struct {
	kind string
	ref  string
}

func (e *unknownRefError) Error() string {
	return "unknown " + e.kind + ": " + e.ref
}
