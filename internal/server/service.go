package server

import (
	"errors"
	"fmt"

	"github.com/lox/tagpoker/internal/protocol"
	"github.com/lox/tagpoker/poker"
	"github.com/lox/tagpoker/sdk/classification"
	"github.com/lox/tagpoker/sdk/strategy"
)

// Service answers classify and check requests. It holds no per-request
// state and is safe for concurrent use.
type Service struct {
	defaultStrategy string
}

// NewService returns a service that gates with defaultStrategy when a
// request does not name one.
func NewService(defaultStrategy string) (*Service, error) {
	if defaultStrategy == "" {
		defaultStrategy = "tight-aggressive"
	}
	if _, err := strategy.New(defaultStrategy); err != nil {
		return nil, err
	}
	return &Service{defaultStrategy: defaultStrategy}, nil
}

// Handle dispatches on req.Type and returns a result message or a
// *protocol.Error.
func (s *Service) Handle(req *protocol.Request) any {
	switch req.Type {
	case protocol.TypeClassify:
		res, perr := s.Classify(req)
		if perr != nil {
			return perr
		}
		return res
	case protocol.TypeCheck:
		res, perr := s.Check(req)
		if perr != nil {
			return perr
		}
		return res
	default:
		return protocol.NewError(req.ID, protocol.CodeUnknownType, fmt.Sprintf("unknown request type %q", req.Type))
	}
}

// Classify describes the request's board.
func (s *Service) Classify(req *protocol.Request) (*protocol.ClassifyResult, *protocol.Error) {
	board, perr := parseCards(req.ID, "board", req.Board)
	if perr != nil {
		return nil, perr
	}
	if !classification.ValidBoard(board) {
		return nil, protocol.NewError(req.ID, protocol.CodeInvalidCards,
			fmt.Sprintf("board must be %d-%d distinct cards", classification.MinBoardCards, classification.MaxBoardCards))
	}
	street, perr := resolveStreet(req, len(board))
	if perr != nil {
		return nil, perr
	}

	ctx := strategy.NewBoardContext(board)
	features := ctx.Features.Slice()
	names := make([]string, len(features))
	for i, f := range features {
		names[i] = f.String()
	}

	return &protocol.ClassifyResult{
		Type:     protocol.TypeClassifyResult,
		ID:       req.ID,
		Street:   street.String(),
		Features: names,
		Texture:  ctx.Texture.String(),
		Tier:     ctx.Tier.String(),
		Wetness:  classification.AnalyzeWetness(board).String(),
		AceHigh:  ctx.AceHigh,
		TJQK:     ctx.TJQK,
		Required: ctx.MinGoodHand(street).String(),
	}, nil
}

// Check gates the request's hole cards on its board.
func (s *Service) Check(req *protocol.Request) (*protocol.CheckResult, *protocol.Error) {
	name := req.Strategy
	if name == "" {
		name = s.defaultStrategy
	}
	strat, err := strategy.New(name)
	if err != nil {
		return nil, protocol.NewError(req.ID, protocol.CodeUnknownStrategy, err.Error())
	}

	board, perr := parseCards(req.ID, "board", req.Board)
	if perr != nil {
		return nil, perr
	}
	hole, perr := parseCards(req.ID, "hole", req.Hole)
	if perr != nil {
		return nil, perr
	}
	street, perr := resolveStreet(req, len(board))
	if perr != nil {
		return nil, perr
	}

	d, err := strat.Evaluate(street, hole, board)
	switch {
	case errors.Is(err, strategy.ErrStreetMismatch), errors.Is(err, strategy.ErrInvalidStreet):
		return nil, protocol.NewError(req.ID, protocol.CodeInvalidStreet, err.Error())
	case err != nil:
		return nil, protocol.NewError(req.ID, protocol.CodeInvalidCards, err.Error())
	}
	if _, err := poker.HandOf(append(append([]poker.Card{}, hole...), board...)); err != nil {
		return nil, protocol.NewError(req.ID, protocol.CodeInvalidCards, "hole and board share a card")
	}

	res := &protocol.CheckResult{
		Type:       protocol.TypeCheckResult,
		ID:         req.ID,
		Strategy:   strat.Name(),
		Street:     d.Street.String(),
		Texture:    d.Context.Texture.String(),
		Tier:       d.Context.Tier.String(),
		Required:   d.Required.String(),
		GoodEnough: d.GoodEnough,
	}
	if d.Scored {
		res.Score = d.Score.String()
	}
	return res, nil
}

func parseCards(id, what string, in []string) ([]poker.Card, *protocol.Error) {
	out := make([]poker.Card, len(in))
	for i, s := range in {
		c, err := poker.ParseCard(s)
		if err != nil {
			return nil, protocol.NewError(id, protocol.CodeInvalidCards, fmt.Sprintf("%s: %v", what, err))
		}
		out[i] = c
	}
	return out, nil
}

func resolveStreet(req *protocol.Request, boardCards int) (strategy.Street, *protocol.Error) {
	if req.Street == "" {
		street, err := strategy.StreetForBoard(boardCards)
		if err != nil {
			return 0, protocol.NewError(req.ID, protocol.CodeInvalidCards, err.Error())
		}
		return street, nil
	}
	street, err := strategy.ParseStreet(req.Street)
	if err != nil {
		return 0, protocol.NewError(req.ID, protocol.CodeInvalidStreet, err.Error())
	}
	if street.BoardCards() != boardCards {
		return 0, protocol.NewError(req.ID, protocol.CodeInvalidStreet,
			fmt.Sprintf("%s needs %d board cards, got %d", street, street.BoardCards(), boardCards))
	}
	return street, nil
}
