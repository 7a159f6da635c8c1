package sequence

// Stage is the current step of the open, drop, close sequence.
type Stage int

const (
	// Idle means no sequence is running.
	Idle Stage = iota

	// BoxOpening plays the box open clip on the box.
	BoxOpening

	// TextDropping plays the drop clip on the text mesh.
	TextDropping

	// BoxClosing plays the box close clip on the box.
	BoxClosing
)

// String returns the stage name used in logs.
func (s Stage) String() string {
	switch s {
	case Idle:
		return "Idle"
	case BoxOpening:
		return "BoxOpening"
	case TextDropping:
		return "TextDropping"
	case BoxClosing:
		return "BoxClosing"
	default:
		return "Unknown"
	}
}

// following returns the stage entered when s is skipped or completes.
func (s Stage) following() Stage {
	switch s {
	case BoxOpening:
		return TextDropping
	case TextDropping:
		return BoxClosing
	default:
		return Idle
	}
}
