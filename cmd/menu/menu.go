// Package menu handles the interactive numbered menu
package menu

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"fjacquet/bank-insights/cmd/common"
	"fjacquet/bank-insights/internal/analysis"
	"fjacquet/bank-insights/internal/models"
	"fjacquet/bank-insights/internal/validation"
	"fjacquet/bank-insights/internal/views"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

const prompt = `Choose an action:
1 - Home page
2 - Find transfers to private persons
3 - Spending report for a category
4 - Cashback analysis
5 - Round-up savings
6 - Events for a period
0 - Exit
Your choice: `

// Cmd represents the menu command
var Cmd = &cobra.Command{
	Use:   "menu",
	Short: "Run the interactive menu",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := common.NewEnv(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return NewSession(env, cmd.InOrStdin()).Run(ctx)
	},
}

// Session is one run of the menu loop over an input stream.
type Session struct {
	env *common.Env
	in  *bufio.Scanner
	out io.Writer
}

// NewSession creates a Session reading answers from in and writing to the
// env's output.
func NewSession(env *common.Env, in io.Reader) *Session {
	return &Session{env: env, in: bufio.NewScanner(in), out: env.Out}
}

// Run loops until the user picks 0 or the input ends.
func (s *Session) Run(ctx context.Context) error {
	for {
		choice, ok := s.ask(prompt)
		if !ok {
			return nil
		}

		var err error
		switch choice {
		case "1":
			err = s.home(ctx)
		case "2":
			err = s.p2p()
		case "3":
			err = s.category()
		case "4":
			err = s.cashback()
		case "5":
			err = s.savings()
		case "6":
			err = s.events()
		case "0":
			s.println("Goodbye.")
			return nil
		default:
			s.println("Invalid choice. Please try again.")
		}
		if err != nil {
			return err
		}
	}
}

func (s *Session) home(ctx context.Context) error {
	page := s.env.Home(ctx, time.Time{})
	return common.Emit(s.env, func() views.Page { return page })
}

func (s *Session) p2p() error {
	records := s.env.P2P()
	if len(records) == 0 {
		s.println("No transfers to private persons found.")
		return nil
	}
	return common.Emit(s.env, func() []models.Record { return records })
}

func (s *Session) category() error {
	name, ok := s.ask("Category: ")
	if !ok {
		return nil
	}
	ref, ok := s.askDate("Date (DD.MM.YYYY), empty for today: ")
	if !ok {
		return nil
	}
	records := s.env.Category(name, ref)
	if len(records) == 0 {
		s.println("No data for the selected category.")
		return nil
	}
	return common.Emit(s.env, func() []models.Record { return records })
}

func (s *Session) cashback() error {
	year, ok := s.askInt("Year (e.g. 2024): ")
	if !ok {
		return nil
	}
	month, ok := s.askInt("Month (1-12): ")
	if !ok {
		return nil
	}
	report := s.env.Cashback(year, time.Month(month))
	if len(report) == 0 {
		s.println("No data for cashback analysis.")
		return nil
	}
	return common.Emit(s.env, func() analysis.CashbackReport { return report })
}

func (s *Session) savings() error {
	month, ok := s.ask("Month (YYYY.MM): ")
	if !ok {
		return nil
	}
	step, ok := s.askInt("Rounding step (10, 50, 100): ")
	if !ok {
		return nil
	}
	total := s.env.Savings(month, step)
	return common.Emit(s.env, func() decimal.Decimal { return total })
}

func (s *Session) events() error {
	end, ok := s.askDate("End of period (DD.MM.YYYY), empty for today: ")
	if !ok {
		return nil
	}
	period, ok := s.ask("Period (W - week, M - month, Y - year, ALL - all time): ")
	if !ok {
		return nil
	}
	summary := s.env.Events(end, period)
	if summary == nil {
		s.println("Could not summarize the selected period.")
		return nil
	}
	return common.Emit(s.env, func() *analysis.PeriodSummary { return summary })
}

// ask prints question and reads one trimmed line; false means the input
// ended.
func (s *Session) ask(question string) (string, bool) {
	fmt.Fprint(s.out, question)
	if !s.in.Scan() {
		fmt.Fprintln(s.out)
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

// askInt re-asks until the answer is an integer.
func (s *Session) askInt(question string) (int, bool) {
	for {
		answer, ok := s.ask(question)
		if !ok {
			return 0, false
		}
		n, err := strconv.Atoi(answer)
		if err == nil {
			return n, true
		}
		s.println("Please enter a whole number.")
	}
}

// askDate re-asks until the answer is empty or a valid date.
func (s *Session) askDate(question string) (time.Time, bool) {
	for {
		answer, ok := s.ask(question)
		if !ok {
			return time.Time{}, false
		}
		t, err := validation.ParseReferenceDate(answer)
		if err == nil {
			return t, true
		}
		s.println(err.Error())
	}
}

func (s *Session) println(line string) {
	fmt.Fprintln(s.out, line)
}
