// Package order contains the Order aggregate and its Status enum.
//
// An order tracks a physical delivery through a fixed lifecycle:
// PRE_DELIVERY -> IN_DELIVERY -> DELIVERED, with ISSUE for deliveries blocked
// by a problem. The workflow is operator-driven, so the lifecycle itself is
// deliberately permissive: any status can be corrected to any other status,
// including a no-op transition back to the same one. The only hard rule is
// that the target must be a member of the closed Status set.
//
// Orders originate in an upstream sales system; their identifiers are opaque
// strings owned by that system and never generated here.
package order
