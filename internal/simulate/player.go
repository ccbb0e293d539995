package simulate

import (
	"context"
	"fmt"
	"math/rand"
	"reflect"

	"github.com/okian/rankr/internal/domain/model"
	"github.com/okian/rankr/internal/domain/tournament"
	"github.com/okian/rankr/internal/domain/types"
	"github.com/okian/rankr/pkg/logger"
)

var choices = []tournament.Choice{tournament.ChoiceLeft, tournament.ChoiceRight, tournament.ChoiceTie}

// player drives one tournament at a time and keeps the votes it cast.
type player struct {
	client *Client
	cfg    *Config
	rng    *rand.Rand
	log    logger.Logger
}

func newPlayer(client *Client, cfg *Config, seed int64, log logger.Logger) *player {
	return &player{
		client: client,
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(seed)), //nolint:gosec // simulated voters
		log:    log,
	}
}

// play runs a tournament over catalog to completion and verifies its ranking.
func (p *player) play(ctx context.Context, catalog []string) (Result, error) {
	n := p.cfg.MinItems + p.rng.Intn(p.cfg.MaxItems-p.cfg.MinItems+1)
	if n > len(catalog) {
		n = len(catalog)
	}
	sel := model.Selection{Indices: p.rng.Perm(len(catalog))[:n]}

	sess, err := p.client.Create(ctx, sel)
	if err != nil {
		return Result{}, err
	}
	res := Result{SessionID: sess.ID, Items: sess.Items}
	if !p.cfg.Keep {
		defer func() {
			if err := p.client.Delete(context.WithoutCancel(ctx), sess.ID); err != nil {
				p.log.Warn(ctx, "failed to delete session", logger.String("session", sess.ID), logger.Error(err))
			}
		}()
	}

	var history []tournament.Vote
	for !sess.Finished() {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if len(history) > 0 && p.rng.Float64() < p.cfg.UndoRate {
			if !sess.CanUndo {
				return res, fmt.Errorf("%w: session %s cannot undo after %d votes", ErrProtocol, sess.ID, len(history))
			}
			if sess, err = p.client.Back(ctx, sess.ID); err != nil {
				return res, err
			}
			history = history[:len(history)-1]
			res.Undos++
		} else {
			if sess.Current == nil {
				return res, fmt.Errorf("%w: session %s is %s without a current pair", ErrProtocol, sess.ID, sess.State)
			}
			pair := *sess.Current
			choice := choices[p.rng.Intn(len(choices))]
			if sess, err = p.client.Vote(ctx, sess.ID, pair, choice.String()); err != nil {
				return res, err
			}
			history = append(history, tournament.Vote{
				Pair:   tournament.Pair{Left: pair.Left, Right: pair.Right},
				Choice: choice,
			})
			res.Votes++
		}
		if sess.Decided != len(history) {
			return res, fmt.Errorf("%w: session %s reports %d decided, %d cast",
				ErrProtocol, sess.ID, sess.Decided, len(history))
		}
	}

	if sess.Decided != sess.Total {
		return res, fmt.Errorf("%w: session %s finished with %d of %d pairs",
			ErrProtocol, sess.ID, sess.Decided, sess.Total)
	}

	got, err := p.client.Ranking(ctx, sess.ID)
	if err != nil {
		return res, err
	}
	res.Ranking = got

	scores := tournament.Replay(sess.Items, history)
	if !reflect.DeepEqual(scores, sess.Scores) {
		return res, fmt.Errorf("%w: session %s scores %v, replay %v", ErrRankingMismatch, sess.ID, sess.Scores, scores)
	}
	if err := compareRanking(tournament.Rank(sess.Items, scores), got); err != nil {
		return res, fmt.Errorf("session %s: %w", sess.ID, err)
	}

	if p.cfg.Export {
		if res.ExportPath, err = p.client.Export(ctx, sess.ID); err != nil {
			return res, err
		}
	}

	p.log.Debug(ctx, "tournament verified",
		logger.String("session", sess.ID),
		logger.Int("items", len(sess.Items)),
		logger.Int("votes", res.Votes),
		logger.Int("undos", res.Undos))
	return res, nil
}

// compareRanking reports the first row where got differs from want.
func compareRanking(want, got []types.Entry) error {
	if len(want) != len(got) {
		return fmt.Errorf("%w: %d rows, want %d", ErrRankingMismatch, len(got), len(want))
	}
	for i := range want {
		if want[i] != got[i] {
			return fmt.Errorf("%w: row %d is %+v, want %+v", ErrRankingMismatch, i+1, got[i], want[i])
		}
	}
	return nil
}
