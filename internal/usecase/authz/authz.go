// Package authz decides who may run which booking operation.
package authz

import (
	"context"

	"facility-booking/internal/domain/user"
	"facility-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

type Action string

const (
	ActionViewReservation    Action = "reservation:view"
	ActionCreateReservation  Action = "reservation:create"
	ActionApproveReservation Action = "reservation:approve"
	ActionRejectReservation  Action = "reservation:reject"
	ActionCancelReservation  Action = "reservation:cancel"
	ActionManageRecurrence   Action = "recurrence:manage"
	ActionManageAlerts       Action = "alert:manage"
	ActionRunMaintenance     Action = "maintenance:run"
)

type rule struct {
	// minRole may act on anyone's target.
	minRole user.Role
	// owner may act on its own target regardless of role.
	owner bool
}

var rules = map[Action]rule{
	ActionViewReservation:    {minRole: user.RoleOperator, owner: true},
	ActionCreateReservation:  {minRole: user.RoleOperator, owner: true},
	ActionApproveReservation: {minRole: user.RoleOperator},
	ActionRejectReservation:  {minRole: user.RoleOperator},
	ActionCancelReservation:  {minRole: user.RoleOperator, owner: true},
	ActionManageRecurrence:   {minRole: user.RoleOperator, owner: true},
	ActionManageAlerts:       {minRole: user.RoleAdmin},
	ActionRunMaintenance:     {minRole: user.RoleAdmin},
}

type Actor struct {
	UserID uuid.UUID
	Role   user.Role
}

// Target is what an action applies to. A zero OwnerID means no owner.
type Target struct {
	OwnerID uuid.UUID
}

var ErrNoActor = errs.New("no authenticated actor")

// HasPermission reports whether actor may perform action on target.
func HasPermission(actor Actor, target Target, action Action) bool {
	r, ok := rules[action]
	if !ok || !actor.Role.IsValid() {
		return false
	}
	if actor.Role.AtLeast(r.minRole) {
		return true
	}
	return r.owner && target.OwnerID != uuid.Nil && target.OwnerID == actor.UserID
}

type actorKey struct{}

func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

func ActorFrom(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(Actor)
	return actor, ok
}

// Authorize checks the actor carried by ctx.
func Authorize(ctx context.Context, target Target, action Action) error {
	actor, ok := ActorFrom(ctx)
	if !ok {
		return errs.Mark(ErrNoActor, errs.ErrForbidden)
	}
	if !HasPermission(actor, target, action) {
		return errs.Mark(errs.Newf("%s may not %s", actor.Role, action), errs.ErrForbidden)
	}
	return nil
}
