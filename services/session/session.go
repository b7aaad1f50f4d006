package session

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"salonassist/models"
	"salonassist/utils"
)

// Resolve computes the session key from the phone number and the
// business-local calendar day, then upserts the client and the context.
// The session upsert is keyed on the compound (phone, day) index, so two
// concurrent first contacts resolve to a single surviving context.
func (m *DefaultManager) Resolve(ctx context.Context, phone string, now time.Time) (*models.SessionContext, error) {
	logger := utils.GetLogger()
	day := now.In(m.Location).Format("2006-01-02")

	if m.Cache != nil {
		if cached, err := m.Cache.Get(ctx, phone, day); err != nil {
			logger.Warn("session cache read failed", zap.String("phone", phone), zap.Error(err))
		} else if cached != nil {
			// A repeat contact bumps last-seen on the cached path too; if the
			// touch fails the resolve falls through to the store.
			if err := m.Sessions.TouchLastSeen(ctx, cached.ID, now); err != nil {
				logger.Warn("session touch failed, resolving from store",
					zap.String("sessionID", cached.ID), zap.Error(err))
			} else {
				cached.LastSeenAt = now
				if err := m.Cache.Set(ctx, cached); err != nil {
					logger.Warn("session cache write failed", zap.String("phone", phone), zap.Error(err))
				}
				return cached, nil
			}
		}
	}

	client, err := m.Clients.UpsertByPhone(ctx, phone, "")
	if err != nil {
		return nil, fmt.Errorf("failed to upsert client: %w", err)
	}

	sessionCtx, err := m.Sessions.UpsertCurrent(ctx, phone, day, *client, now)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve session context: %w", err)
	}

	if m.Cache != nil {
		if err := m.Cache.Set(ctx, sessionCtx); err != nil {
			logger.Warn("session cache write failed", zap.String("phone", phone), zap.Error(err))
		}
	}

	logger.Debug("session resolved",
		zap.String("phone", phone),
		zap.String("day", day),
		zap.String("sessionID", sessionCtx.ID),
	)
	return sessionCtx, nil
}

// AppendSummary persists a note onto the rolling digest and invalidates the
// cached copy so the next Resolve sees it.
func (m *DefaultManager) AppendSummary(ctx context.Context, sessionID, note string) error {
	logger := utils.GetLogger()

	sessionCtx, err := m.Sessions.GetByID(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}

	if err := m.Sessions.AppendSummary(ctx, sessionID, note, time.Now()); err != nil {
		return fmt.Errorf("failed to append summary: %w", err)
	}

	if m.Cache != nil {
		if err := m.Cache.Clear(ctx, sessionCtx.Phone, sessionCtx.Day); err != nil {
			logger.Warn("session cache invalidation failed",
				zap.String("sessionID", sessionID), zap.Error(err))
		}
	}
	return nil
}

// UpdateClientProfile records learned profile details and invalidates the
// current day's cached context, which embeds a client snapshot.
func (m *DefaultManager) UpdateClientProfile(ctx context.Context, phone, name, preferences string) error {
	if err := m.Clients.UpdateProfile(ctx, phone, name, preferences); err != nil {
		return fmt.Errorf("failed to update client profile: %w", err)
	}
	if m.Cache != nil {
		day := time.Now().In(m.Location).Format("2006-01-02")
		if err := m.Cache.Clear(ctx, phone, day); err != nil {
			utils.GetLogger().Warn("session cache invalidation failed",
				zap.String("phone", phone), zap.Error(err))
		}
	}
	return nil
}
