package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add    func(AddArgs) (Result, error)
	Done   func(TargetArgs) (Result, error)
	Skip   func(TargetArgs) (Result, error)
	Delete func(TargetArgs) (Result, error)
	Water  func(WaterArgs) (Result, error)
	Goal   func(GoalArgs) (Result, error)
	Focus  func() (Result, error)
	Bounty func() (Result, error)
	Note   func(NoteArgs) (Result, error)
	Goto   func(GotoArgs) (Result, error)
	Claim  func(ClaimArgs) (Result, error)
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypeDone, TypeSkip, TypeDelete:
		h := map[Type]func(TargetArgs) (Result, error){
			TypeDone:   handlers.Done,
			TypeSkip:   handlers.Skip,
			TypeDelete: handlers.Delete,
		}[cmd.Type]
		if h == nil {
			return Result{}, missing(cmd.Type)
		}
		return h(*cmd.Target)
	case TypeWater:
		if handlers.Water == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Water(*cmd.Water)
	case TypeGoal:
		if handlers.Goal == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Goal(*cmd.Goal)
	case TypeFocus:
		if handlers.Focus == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Focus()
	case TypeBounty:
		if handlers.Bounty == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Bounty()
	case TypeNote:
		if handlers.Note == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Note(*cmd.Note)
	case TypeGoto:
		if handlers.Goto == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Goto(*cmd.Goto)
	case TypeClaim:
		if handlers.Claim == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Claim(*cmd.Claim)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
