package fintrack

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/etnz/fintrack/date"
	"github.com/google/uuid"
)

// ErrSessionInvalid reports that the backend rejected the session's
// credential. The caller should discard the persisted token and ask the
// user to log in again.
var ErrSessionInvalid = errors.New("session invalid or expired")

// Notifier surfaces the outcome of a mutation to the user as a transient
// message. A nil notifier is silent.
type Notifier func(msg string)

// Store is the in-memory mirror of the backend-owned collections. It is
// the sole writer of the session's mutable state: every mutation calls the
// backend first and applies only the server-confirmed value. Construct one
// per session with NewStore and pass it by reference; there is no ambient
// singleton.
type Store struct {
	client *Client
	quoter *Quoter
	notify Notifier

	mu            sync.Mutex
	subscriptions []Subscription
	expenses      []Expense
	investments   []Investment
	assets        []Asset

	quotes   QuoteMap
	quoteGen uint64 // generation of the quote map currently applied
	issueGen uint64 // generation of the most recently issued refresh
}

// NewStore returns an empty store bound to a client and quoter.
func NewStore(client *Client, quoter *Quoter, notify Notifier) *Store {
	return &Store{
		client: client,
		quoter: quoter,
		notify: notify,
		quotes: QuoteMap{},
	}
}

func (s *Store) notifyf(format string, args ...any) {
	if s.notify != nil {
		s.notify(fmt.Sprintf(format, args...))
	}
}

// Load fetches the four collections as one concurrent batch. Any failure
// fails the whole load: the mirror is cleared and the error wraps
// ErrSessionInvalid, since an unreadable collection set means the
// credential is bad or expired.
func (s *Store) Load(ctx context.Context) error {
	var subs []Subscription
	var exps []Expense
	var invs []Investment
	var assets []Asset
	var errSubs, errExps, errInvs, errAssets error

	var wg sync.WaitGroup
	wg.Add(4)
	go func() { defer wg.Done(); subs, errSubs = s.client.Subscriptions(ctx) }()
	go func() { defer wg.Done(); exps, errExps = s.client.Expenses(ctx) }()
	go func() { defer wg.Done(); invs, errInvs = s.client.Investments(ctx) }()
	go func() { defer wg.Done(); assets, errAssets = s.client.Assets(ctx) }()
	wg.Wait()

	if err := errors.Join(errSubs, errExps, errInvs, errAssets); err != nil {
		s.mu.Lock()
		s.subscriptions, s.expenses, s.investments, s.assets = nil, nil, nil, nil
		s.mu.Unlock()
		return fmt.Errorf("%w: %w", ErrSessionInvalid, err)
	}

	s.mu.Lock()
	s.subscriptions, s.expenses, s.investments, s.assets = subs, exps, invs, assets
	s.mu.Unlock()
	return nil
}

// Subscriptions returns a copy of the mirrored subscription collection.
func (s *Store) Subscriptions() []Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Subscription(nil), s.subscriptions...)
}

// Expenses returns a copy of the mirrored expense collection.
func (s *Store) Expenses() []Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Expense(nil), s.expenses...)
}

// Investments returns a copy of the mirrored investment collection.
func (s *Store) Investments() []Investment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Investment(nil), s.investments...)
}

// Assets returns a copy of the mirrored asset collection.
func (s *Store) Assets() []Asset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Asset(nil), s.assets...)
}

// Quotes returns the most recently applied quote map.
func (s *Store) Quotes() QuoteMap {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quotes
}

// RefreshQuotes fetches current prices for the held instruments. Each call
// is tagged with a generation token; a fetch that completes after a newer
// one was issued is discarded instead of overwriting fresher data.
func (s *Store) RefreshQuotes(ctx context.Context) {
	s.mu.Lock()
	s.issueGen++
	gen := s.issueGen
	holdings := append([]Investment(nil), s.investments...)
	s.mu.Unlock()

	quotes := s.quoter.Fetch(ctx, holdings)
	s.applyQuotes(gen, quotes)
}

// applyQuotes installs a fetched quote map unless a newer fetch has
// already been applied.
func (s *Store) applyQuotes(gen uint64, quotes QuoteMap) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen <= s.quoteGen {
		return // stale response, a newer fetch already landed
	}
	s.quoteGen = gen
	s.quotes = quotes
}

// --- subscriptions ---

// AddSubscription creates a subscription on the backend and mirrors the
// confirmed value.
func (s *Store) AddSubscription(ctx context.Context, data NewSubscription) (Subscription, error) {
	sub, err := s.client.AddSubscription(ctx, data)
	if err != nil {
		s.notifyf("could not add subscription: %v", err)
		return Subscription{}, err
	}
	s.mu.Lock()
	s.subscriptions = append([]Subscription{sub}, s.subscriptions...)
	s.mu.Unlock()
	s.notifyf("subscription %q added", sub.Name)
	return sub, nil
}

// UpdateSubscription updates a subscription on the backend and mirrors the
// confirmed value.
func (s *Store) UpdateSubscription(ctx context.Context, id uuid.UUID, data Subscription) (Subscription, error) {
	sub, err := s.client.UpdateSubscription(ctx, id, data)
	if err != nil {
		s.notifyf("could not update subscription: %v", err)
		return Subscription{}, err
	}
	s.mu.Lock()
	for i := range s.subscriptions {
		if s.subscriptions[i].ID == id {
			s.subscriptions[i] = sub
		}
	}
	s.mu.Unlock()
	s.notifyf("subscription %q updated", sub.Name)
	return sub, nil
}

// DeleteSubscription deletes a subscription on the backend and drops it
// from the mirror.
func (s *Store) DeleteSubscription(ctx context.Context, id uuid.UUID) error {
	if err := s.client.DeleteSubscription(ctx, id); err != nil {
		s.notifyf("could not delete subscription: %v", err)
		return err
	}
	s.mu.Lock()
	s.subscriptions = deleteByID(s.subscriptions, func(sub Subscription) uuid.UUID { return sub.ID }, id)
	s.mu.Unlock()
	s.notifyf("subscription deleted")
	return nil
}

// ToggleSubscription flips the paid-for-current-cycle marker through the
// dedicated backend call and mirrors the confirmed value.
func (s *Store) ToggleSubscription(ctx context.Context, id uuid.UUID) (Subscription, error) {
	sub, err := s.client.ToggleSubscription(ctx, id)
	if err != nil {
		s.notifyf("could not toggle subscription: %v", err)
		return Subscription{}, err
	}
	s.mu.Lock()
	for i := range s.subscriptions {
		if s.subscriptions[i].ID == id {
			s.subscriptions[i] = sub
		}
	}
	s.mu.Unlock()
	s.notifyf("subscription %q is now %s", sub.Name, sub.StatusOn(date.Today()))
	return sub, nil
}

// --- expenses ---

// AddExpense creates an expense on the backend and mirrors the confirmed
// value.
func (s *Store) AddExpense(ctx context.Context, data NewExpense) (Expense, error) {
	exp, err := s.client.AddExpense(ctx, data)
	if err != nil {
		s.notifyf("could not add expense: %v", err)
		return Expense{}, err
	}
	s.mu.Lock()
	s.expenses = append([]Expense{exp}, s.expenses...)
	s.mu.Unlock()
	s.notifyf("expense %q added", exp.Description)
	return exp, nil
}

// UpdateExpense updates an expense on the backend and mirrors the
// confirmed value.
func (s *Store) UpdateExpense(ctx context.Context, id uuid.UUID, data Expense) (Expense, error) {
	exp, err := s.client.UpdateExpense(ctx, id, data)
	if err != nil {
		s.notifyf("could not update expense: %v", err)
		return Expense{}, err
	}
	s.mu.Lock()
	for i := range s.expenses {
		if s.expenses[i].ID == id {
			s.expenses[i] = exp
		}
	}
	s.mu.Unlock()
	s.notifyf("expense %q updated", exp.Description)
	return exp, nil
}

// DeleteExpense deletes an expense on the backend and drops it from the
// mirror.
func (s *Store) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	if err := s.client.DeleteExpense(ctx, id); err != nil {
		s.notifyf("could not delete expense: %v", err)
		return err
	}
	s.mu.Lock()
	s.expenses = deleteByID(s.expenses, func(e Expense) uuid.UUID { return e.ID }, id)
	s.mu.Unlock()
	s.notifyf("expense deleted")
	return nil
}

// --- investments ---

// AddInvestment creates a holding on the backend and mirrors the confirmed
// value. The holdings set changed, so quotes are stale until the next
// RefreshQuotes.
func (s *Store) AddInvestment(ctx context.Context, data NewInvestment) (Investment, error) {
	inv, err := s.client.AddInvestment(ctx, data)
	if err != nil {
		s.notifyf("could not add investment: %v", err)
		return Investment{}, err
	}
	s.mu.Lock()
	s.investments = append([]Investment{inv}, s.investments...)
	s.mu.Unlock()
	s.notifyf("investment %q added", inv.Name)
	return inv, nil
}

// UpdateInvestment updates a holding on the backend and mirrors the
// confirmed value, including the recomputed cost basis.
func (s *Store) UpdateInvestment(ctx context.Context, id uuid.UUID, data UpdateInvestment) (Investment, error) {
	inv, err := s.client.UpdateInvestment(ctx, id, data)
	if err != nil {
		s.notifyf("could not update investment: %v", err)
		return Investment{}, err
	}
	s.mu.Lock()
	for i := range s.investments {
		if s.investments[i].ID == id {
			s.investments[i] = inv
		}
	}
	s.mu.Unlock()
	s.notifyf("investment %q updated", inv.Name)
	return inv, nil
}

// DeleteInvestment deletes a holding on the backend and drops it from the
// mirror.
func (s *Store) DeleteInvestment(ctx context.Context, id uuid.UUID) error {
	if err := s.client.DeleteInvestment(ctx, id); err != nil {
		s.notifyf("could not delete investment: %v", err)
		return err
	}
	s.mu.Lock()
	s.investments = deleteByID(s.investments, func(i Investment) uuid.UUID { return i.ID }, id)
	s.mu.Unlock()
	s.notifyf("investment deleted")
	return nil
}

// --- assets ---

// AddAsset creates an asset on the backend and mirrors the confirmed
// value.
func (s *Store) AddAsset(ctx context.Context, data NewAsset) (Asset, error) {
	asset, err := s.client.AddAsset(ctx, data)
	if err != nil {
		s.notifyf("could not add asset: %v", err)
		return Asset{}, err
	}
	s.mu.Lock()
	s.assets = append([]Asset{asset}, s.assets...)
	s.mu.Unlock()
	s.notifyf("asset %q added", asset.Name)
	return asset, nil
}

// DeleteAsset deletes an asset on the backend and drops it from the
// mirror.
func (s *Store) DeleteAsset(ctx context.Context, id uuid.UUID) error {
	if err := s.client.DeleteAsset(ctx, id); err != nil {
		s.notifyf("could not delete asset: %v", err)
		return err
	}
	s.mu.Lock()
	s.assets = deleteByID(s.assets, func(a Asset) uuid.UUID { return a.ID }, id)
	s.mu.Unlock()
	s.notifyf("asset deleted")
	return nil
}

// MonthlySummary fetches the backend-computed spending history.
func (s *Store) MonthlySummary(ctx context.Context) ([]MonthlyTotal, error) {
	totals, err := s.client.MonthlySummary(ctx)
	if err != nil {
		s.notifyf("could not load reports data: %v", err)
		return nil, err
	}
	return totals, nil
}

func deleteByID[T any](items []T, id func(T) uuid.UUID, target uuid.UUID) []T {
	kept := items[:0]
	for _, item := range items {
		if id(item) != target {
			kept = append(kept, item)
		}
	}
	return kept
}
