package service

import (
	"context"

	"github.com/roamfare/roamfare/internal/cache"
	"github.com/roamfare/roamfare/internal/domain/pricingrule"
	"github.com/roamfare/roamfare/internal/logger"
	"github.com/roamfare/roamfare/internal/pubsub"
	"github.com/roamfare/roamfare/internal/types"
)

// CachedRuleRepository decorates pricingrule.Repository with a cache on the
// active rule set. Price resolution reads the full active set on every
// request, so this is the hottest query in the system. Writes go straight
// through and invalidate; cross-instance invalidation rides the rule change
// topic, see StartRuleCacheRefresher.
type CachedRuleRepository struct {
	repo   pricingrule.Repository
	cache  cache.Cache
	logger *logger.Logger
}

func NewCachedRuleRepository(
	repo pricingrule.Repository,
	c cache.Cache,
	logger *logger.Logger,
) *CachedRuleRepository {
	return &CachedRuleRepository{
		repo:   repo,
		cache:  c,
		logger: logger,
	}
}

var _ pricingrule.Repository = (*CachedRuleRepository)(nil)

func (r *CachedRuleRepository) Create(ctx context.Context, rule *pricingrule.PricingRule) error {
	if err := r.repo.Create(ctx, rule); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedRuleRepository) Get(ctx context.Context, id string) (*pricingrule.PricingRule, error) {
	return r.repo.Get(ctx, id)
}

func (r *CachedRuleRepository) ListActive(ctx context.Context) ([]*pricingrule.PricingRule, error) {
	key := cache.GenerateKey(cache.PrefixPricingRules, types.GetTenantID(ctx))

	if cached, found := r.cache.Get(ctx, key); found {
		if rules, ok := cached.([]*pricingrule.PricingRule); ok {
			return rules, nil
		}
	}

	rules, err := r.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	r.cache.Set(ctx, key, rules, cache.DefaultExpiration)
	return rules, nil
}

func (r *CachedRuleRepository) Update(ctx context.Context, rule *pricingrule.PricingRule) error {
	if err := r.repo.Update(ctx, rule); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedRuleRepository) Delete(ctx context.Context, id string) error {
	if err := r.repo.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedRuleRepository) invalidate(ctx context.Context) {
	r.cache.DeleteByPrefix(ctx, cache.PrefixPricingRules)
}

// StartRuleCacheRefresher consumes rule change notifications and drops the
// cached rule set so the next resolution refetches it. Runs until the context
// is cancelled or the subscription channel closes.
func StartRuleCacheRefresher(
	ctx context.Context,
	subscriber pubsub.Subscriber,
	c cache.Cache,
	logger *logger.Logger,
) error {
	messages, err := subscriber.Subscribe(ctx, pubsub.TopicRulesChanged)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				c.DeleteByPrefix(ctx, cache.PrefixPricingRules)
				logger.Debugw("pricing rule cache invalidated", "message_id", msg.UUID)
				msg.Ack()
			}
		}
	}()

	return nil
}
