package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"
	"net/url"
	"scorekeeper/internal/apperr"
	"scorekeeper/internal/models"
	"scorekeeper/internal/providers"
	"scorekeeper/internal/repository"
	"scorekeeper/internal/structures"
	"strings"
	"time"
)

const tokenBytes = 16

type GuestLinkServiceInterface interface {
	// GenerateLink returns a guest URL for classID, reusing a link that is
	// still valid. origin is used when no public URL is configured.
	GenerateLink(ctx context.Context, origin, classID string) (string, bool, error)
	ResolveToken(ctx context.Context, token string) (*models.GuestView, error)
}

type GuestLinkService struct {
	config   *structures.Config
	repo     repository.RecordRepositoryInterface
	activity ActivityLoggerInterface
	metrics  providers.MetricsProviderInterface
	logger   providers.Logger
	now      func() time.Time
	random   io.Reader
}

func (g *GuestLinkService) GenerateLink(ctx context.Context, origin, classID string) (string, bool, error) {
	if classID == "" {
		return "", false, apperr.Validation("Class ID is required to generate a guest link.")
	}

	now := g.now()
	existing, ok, err := g.repo.FindValidGuestLink(ctx, classID, now)
	if err != nil {
		return "", false, err
	}
	if ok {
		g.logger.Debugf(providers.TypeGuest, "Reusing guest link for class %s", classID)
		g.metrics.IncGuestLinks("reused")
		return g.buildURL(origin, existing.Token), true, nil
	}

	token, err := g.newToken()
	if err != nil {
		return "", false, err
	}
	link := models.GuestLink{
		Token:   token,
		ClassID: classID,
		Expiry:  now.Add(g.config.Guest.ValidFor),
	}
	if _, err := g.repo.GuestLinks().Insert(ctx, link.ToDocument()); err != nil {
		return "", false, err
	}

	g.activity.Log(ctx, models.ActionGeneratedGuestLink, map[string]any{"classId": classID, "token": token})
	g.metrics.IncGuestLinks("minted")
	g.logger.Infof(providers.TypeGuest, "Guest link for class %s issued, valid until %s", classID, models.FormatISO(link.Expiry))

	return g.buildURL(origin, token), false, nil
}

func (g *GuestLinkService) ResolveToken(ctx context.Context, token string) (*models.GuestView, error) {
	if token == "" {
		return nil, apperr.Validation("Token is required as a query parameter.")
	}

	link, err := g.repo.FindGuestLinkByToken(ctx, token)
	if err != nil {
		var nf *apperr.NotFoundError
		if errors.As(err, &nf) {
			g.logger.Infof(providers.TypeGuest, "Guest link not found for token %s", token)
			g.metrics.IncGuestLinks("unknown")
		}
		return nil, err
	}

	if link.IsExpired(g.now()) {
		g.logger.Infof(providers.TypeGuest, "Guest link expired for token %s", token)
		g.metrics.IncGuestLinks("expired")
		if err := g.repo.DeleteGuestLink(ctx, link.ID); err != nil {
			return nil, err
		}
		return nil, &apperr.ExpiredError{Resource: "guest link"}
	}

	docs, err := g.repo.StudentsByClass(ctx, link.ClassID)
	if err != nil {
		return nil, err
	}

	view := &models.GuestView{
		ClassID: link.ClassID,
		Data:    make([]models.GuestStudentView, 0, len(docs)),
	}
	for _, d := range docs {
		view.Data = append(view.Data, models.GuestViewFromDocument(d))
	}
	g.metrics.IncGuestLinks("resolved")
	g.logger.Debugf(providers.TypeGuest, "Fetched %d items for class %s", len(view.Data), link.ClassID)

	return view, nil
}

func (g *GuestLinkService) newToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := io.ReadFull(g.random, buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func (g *GuestLinkService) buildURL(origin, token string) string {
	base := origin
	if g.config.Guest.PublicURL != "" {
		base = g.config.Guest.PublicURL
	}
	return strings.TrimRight(base, "/") + "/index.html?view=guest&token=" + url.QueryEscape(token)
}

func NewGuestLinkService(config *structures.Config, repo repository.RecordRepositoryInterface, activity ActivityLoggerInterface, metrics providers.MetricsProviderInterface, logger providers.Logger) GuestLinkServiceInterface {
	return &GuestLinkService{
		config:   config,
		repo:     repo,
		activity: activity,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
		random:   rand.Reader,
	}
}
