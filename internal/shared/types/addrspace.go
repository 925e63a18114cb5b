package types

// AddressSpace is the network zone vocabulary used for probe hints and for
// classifying resolved targets. The demo's two form variants historically
// disagreed (six values vs. two); the full set is canonical here and the
// reduced set is a configuration surface, never a silent default.
type AddressSpace string

const (
	SpaceLoopback AddressSpace = "loopback"
	SpaceLocal    AddressSpace = "local"
	SpacePrivate  AddressSpace = "private"
	SpacePublic   AddressSpace = "public"
	SpaceUnknown  AddressSpace = "unknown"
	// SpaceNone means the user declined to attach a hint.
	SpaceNone AddressSpace = "none"
)

// FullSpaces is the canonical six-value vocabulary.
func FullSpaces() []AddressSpace {
	return []AddressSpace{SpaceLoopback, SpaceLocal, SpacePrivate, SpacePublic, SpaceUnknown, SpaceNone}
}

// ReducedSpaces is the two-value vocabulary some deployments expose.
func ReducedSpaces() []AddressSpace {
	return []AddressSpace{SpaceLocal, SpacePrivate}
}

// SpacesFor maps a vocabulary name ("full" or "reduced") to its value set.
// Unrecognized names fall back to the full set.
func SpacesFor(vocabulary string) []AddressSpace {
	if vocabulary == "reduced" {
		return ReducedSpaces()
	}
	return FullSpaces()
}

// ValidSpace reports whether s belongs to the given vocabulary.
func ValidSpace(s AddressSpace, vocabulary string) bool {
	for _, v := range SpacesFor(vocabulary) {
		if s == v {
			return true
		}
	}
	return false
}
