// Package kernel contains the shared value objects of the domain model.
// Currently that is UUID, the generated identity used by audit entries and
// notifications. Order identifiers are not UUIDs: they arrive from the
// upstream sales system as opaque strings (e.g. "SO-10421") and are carried
// verbatim.
package kernel
