package booking

import (
	"context"
	"crypto/rand"
	"fmt"

	"go.uber.org/zap"

	"github.com/coworkcli/cowork/internal/auth"
	"github.com/coworkcli/cowork/internal/cosoft"
)

// Pipeline executes the two-phase reservation flow against the remote API:
// stage the intent in a cart, then confirm it with a credit payment. The
// two calls are strictly sequential, never retried, and correlated by a
// fresh random cart identifier per attempt.
type Pipeline struct {
	api     cosoft.ReservationAPI
	session auth.Session
	log     *zap.Logger
}

// NewPipeline builds a Pipeline bound to one authenticated session.
func NewPipeline(api cosoft.ReservationAPI, session auth.Session, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{api: api, session: session, log: log}
}

// Book attempts to create exactly one reservation for an already-validated
// request against a resolved room. It returns a confirmation or a
// classified *Error; it never returns a bare failure when classification is
// possible. No payment call is made when the cart phase fails.
func (p *Pipeline) Book(ctx context.Context, room Room, req Request) (*Confirmation, error) {
	cartID := newCartID()
	order := p.api.NewOrder(room.APIID, req.Date, req.StartTime, req.EndTime, cartID)

	cartResp, err := p.api.SubmitCart(ctx, p.session, order)
	if err != nil {
		return nil, apiError(err, "cart request failed: %v", err)
	}
	outcome, err := classifyCart(cartResp)
	if err != nil {
		p.log.Debug("cart rejected", zap.String("cartId", cartID), zap.String("room", room.Name), zap.Error(err))
		return nil, err
	}

	payResp, err := p.api.SubmitPayment(ctx, p.session, order)
	if err != nil {
		return nil, apiError(err, "payment request failed: %v", err)
	}
	warnings, err := classifyPayment(payResp)
	if err != nil {
		p.log.Debug("payment rejected", zap.String("cartId", cartID), zap.String("room", room.Name), zap.Error(err))
		return nil, err
	}

	p.log.Debug("booking confirmed",
		zap.String("cartId", cartID),
		zap.String("room", room.Name),
		zap.String("price", outcome.price),
	)

	return &Confirmation{
		Room:      room.Name,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Price:     outcome.price,
		Warnings:  append(outcome.warnings, warnings...),
	}, nil
}

// newCartID generates the per-attempt cart correlation token: ten hex
// characters of process-local randomness. No cross-process uniqueness is
// guaranteed or assumed.
func newCartID() string {
	b := make([]byte, 5)
	_, _ = rand.Read(b)
	return fmt.Sprintf("%x", b)
}
