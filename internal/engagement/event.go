package engagement

// Kind discriminates engagement event types.
type Kind string

const (
	KindImpression Kind = "impression"
	KindView       Kind = "view"
	KindClick      Kind = "click"
)

// Event is a single fire-and-forget engagement signal. Events are created at
// request time, consumed once by the dispatcher and never persisted directly.
type Event struct {
	Kind     Kind
	PostID   string
	ViewerIP string // set for view events only
}

// Impression records a post being rendered in a listing.
func Impression(postID string) Event {
	return Event{Kind: KindImpression, PostID: postID}
}

// DetailView records a post's full page being rendered by a viewer.
func DetailView(postID, viewerIP string) Event {
	return Event{Kind: KindView, PostID: postID, ViewerIP: viewerIP}
}

// Click records an explicit user action on a post.
func Click(postID string) Event {
	return Event{Kind: KindClick, PostID: postID}
}
