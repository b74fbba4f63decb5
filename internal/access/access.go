package access

// Session is the authenticated caller as seen by the request, including
// the subscription snapshot baked into the token at issue time. The
// snapshot can lag behind the database, so it is only trusted as a
// fallback when the fresh user read is unavailable.
type Session struct {
	UserID             int
	Email              string
	Role               string
	SubscriptionID     string
	SubscriptionStatus string
}

// Snapshot holds the subscription fields freshly read from the users table.
type Snapshot struct {
	SubscriptionID     string
	SubscriptionStatus string
}

const (
	RoleMember  = "member"
	RoleTrainer = "trainer"
	RoleAdmin   = "admin"

	StatusActive = "active"
)

// Decision is the outcome of resolving a user's access to a program.
type Decision string

const (
	DecisionAnonymous  Decision = "anonymous"
	DecisionOwner      Decision = "owner"
	DecisionSubscribed Decision = "subscribed"
	DecisionEnrolled   Decision = "enrolled"
	DecisionLocked     Decision = "locked"
)

// FullContent reports whether the decision entitles the user to the
// complete program content (workouts, exercises, video URLs).
func (d Decision) FullContent() bool {
	switch d {
	case DecisionOwner, DecisionSubscribed, DecisionEnrolled:
		return true
	}
	return false
}

// IsOwnerOrAdmin is the single shared ownership predicate: the program's
// trainer and admins always see everything, including unpublished drafts.
func IsOwnerOrAdmin(s *Session, trainerID int) bool {
	if s == nil {
		return false
	}
	return s.UserID == trainerID || s.Role == RoleAdmin
}

// HasActiveSubscription treats either signal as sufficient: an "active"
// status, or the presence of a subscription id. A lingering id on a
// non-active subscription therefore still grants access; see the open
// question recorded in DESIGN.md before tightening this.
func HasActiveSubscription(status, subscriptionID string) bool {
	return status == StatusActive || subscriptionID != ""
}

// Resolve decides whether the caller may view full program content.
//
// It is a pure function over already-fetched data: the caller supplies
// the session, the program owner, whether the caller holds an active
// enrollment for this program, and the fresh subscription snapshot
// (nil when the user read failed). Precedence, first match wins:
//
//  1. no session              -> Anonymous
//  2. owner or admin          -> Owner (never masked by subscription state)
//  3. active subscription     -> Subscribed (dbUser preferred, session fallback)
//  4. active enrollment       -> Enrolled
//  5. otherwise               -> Locked
func Resolve(s *Session, trainerID int, enrolled bool, dbUser *Snapshot) Decision {
	if s == nil {
		return DecisionAnonymous
	}

	if IsOwnerOrAdmin(s, trainerID) {
		return DecisionOwner
	}

	if dbUser != nil {
		if HasActiveSubscription(dbUser.SubscriptionStatus, dbUser.SubscriptionID) {
			return DecisionSubscribed
		}
	} else if HasActiveSubscription(s.SubscriptionStatus, s.SubscriptionID) {
		// Stale session claim, last resort only.
		return DecisionSubscribed
	}

	if enrolled {
		return DecisionEnrolled
	}

	return DecisionLocked
}
