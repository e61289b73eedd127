// Package commands parses the slash commands typed into the palette and
// dispatches them to handlers.
package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/sprout/internal/clock"
	"github.com/sandeepkv93/sprout/internal/model"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeDone   Type = "done"
	TypeSkip   Type = "skip"
	TypeDelete Type = "delete"
	TypeWater  Type = "water"
	TypeGoal   Type = "goal"
	TypeFocus  Type = "focus"
	TypeBounty Type = "bounty"
	TypeNote   Type = "note"
	TypeGoto   Type = "goto"
	TypeClaim  Type = "claim"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func invalid(format string, a ...any) error {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, a...)}
}

// AddArgs is "/add <title> HH:MM-HH:MM [daily|weekdays:1,3,5|on:YYYY-MM-DD]".
// Without a recurrence token the task is a one-off on the viewed date.
type AddArgs struct {
	Title      string
	Start      string
	End        string
	Recurrence model.Recurrence
	Date       string
	Days       []int
}

// TargetArgs names a task by id or by a fuzzy title query.
type TargetArgs struct {
	Query string
}

type WaterArgs struct {
	Delta int
}

type GoalArgs struct {
	Cups int
}

type NoteArgs struct {
	Content string
}

// GotoArgs holds either an absolute Date or a day Offset from the viewed
// date. "today" sets Today.
type GotoArgs struct {
	Date   string
	Offset int
	Today  bool
}

type ClaimArgs struct {
	SaplingID string
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Target *TargetArgs
	Water  *WaterArgs
	Goal   *GoalArgs
	Note   *NoteArgs
	Goto   *GotoArgs
	Claim  *ClaimArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeDone, TypeSkip, TypeDelete:
		return parseTarget(input, Type(head), args)
	case TypeWater:
		return parseWater(input, args)
	case TypeGoal:
		return parseGoal(input, args)
	case TypeFocus, TypeBounty:
		return Command{Type: Type(head), Raw: input}, nil
	case TypeNote:
		content := strings.TrimSpace(strings.Join(args, " "))
		if content == "" {
			return Command{}, invalid("note requires text")
		}
		return Command{Type: TypeNote, Raw: input, Note: &NoteArgs{Content: content}}, nil
	case TypeGoto:
		return parseGoto(input, args)
	case TypeClaim:
		if len(args) != 1 {
			return Command{}, invalid("claim requires a sapling id")
		}
		return Command{Type: TypeClaim, Raw: input, Claim: &ClaimArgs{SaplingID: args[0]}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	out := AddArgs{Recurrence: model.RecurrenceNone}
	title := make([]string, 0, len(args))
	for _, arg := range args {
		lower := strings.ToLower(arg)
		switch {
		case out.Start == "" && isWindow(arg):
			out.Start, out.End, _ = strings.Cut(arg, "-")
		case lower == "daily":
			out.Recurrence = model.RecurrenceDaily
		case strings.HasPrefix(lower, "weekdays:"):
			days, err := parseDays(strings.TrimPrefix(lower, "weekdays:"))
			if err != nil {
				return Command{}, err
			}
			out.Recurrence = model.RecurrenceWeekdays
			out.Days = days
		case strings.HasPrefix(lower, "on:"):
			date := strings.TrimPrefix(lower, "on:")
			if !clock.ValidDate(date) {
				return Command{}, invalid("invalid date %q", date)
			}
			out.Recurrence = model.RecurrenceNone
			out.Date = date
		default:
			title = append(title, arg)
		}
	}
	out.Title = strings.TrimSpace(strings.Join(title, " "))
	if out.Title == "" {
		return Command{}, invalid("add requires a title")
	}
	if out.Start == "" {
		return Command{}, invalid("add requires a HH:MM-HH:MM window")
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &out}, nil
}

func isWindow(s string) bool {
	start, end, ok := strings.Cut(s, "-")
	return ok && clock.ValidHHMM(start) && clock.ValidHHMM(end)
}

var dayNames = map[string]int{
	"sun": 0, "mon": 1, "tue": 2, "wed": 3, "thu": 4, "fri": 5, "sat": 6,
}

func parseDays(spec string) ([]int, error) {
	out := make([]int, 0, 7)
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if d, ok := dayNames[part]; ok {
			out = append(out, d)
			continue
		}
		d, err := strconv.Atoi(part)
		if err != nil || d < 0 || d > 6 {
			return nil, invalid("invalid weekday %q", part)
		}
		out = append(out, d)
	}
	if len(out) == 0 {
		return nil, invalid("weekdays requires at least one day")
	}
	return model.NormalizeDays(out)
}

func parseTarget(raw string, typ Type, args []string) (Command, error) {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return Command{}, invalid("%s requires a task", typ)
	}
	return Command{Type: typ, Raw: raw, Target: &TargetArgs{Query: query}}, nil
}

func parseWater(raw string, args []string) (Command, error) {
	delta := 1
	if len(args) > 0 {
		switch args[0] {
		case "+", "+1":
			delta = 1
		case "-", "-1":
			delta = -1
		default:
			return Command{}, invalid("water takes + or -")
		}
	}
	return Command{Type: TypeWater, Raw: raw, Water: &WaterArgs{Delta: delta}}, nil
}

func parseGoal(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("goal requires a cup count")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return Command{}, invalid("invalid cup count %q", args[0])
	}
	return Command{Type: TypeGoal, Raw: raw, Goal: &GoalArgs{Cups: n}}, nil
}

func parseGoto(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("goto requires a date, today, +N or -N")
	}
	arg := strings.ToLower(args[0])
	switch {
	case arg == "today":
		return Command{Type: TypeGoto, Raw: raw, Goto: &GotoArgs{Today: true}}, nil
	case strings.HasPrefix(arg, "+") || strings.HasPrefix(arg, "-"):
		n, err := strconv.Atoi(arg)
		if err != nil {
			return Command{}, invalid("invalid offset %q", arg)
		}
		return Command{Type: TypeGoto, Raw: raw, Goto: &GotoArgs{Offset: n}}, nil
	case clock.ValidDate(arg):
		return Command{Type: TypeGoto, Raw: raw, Goto: &GotoArgs{Date: arg}}, nil
	default:
		return Command{}, invalid("invalid date %q", arg)
	}
}
