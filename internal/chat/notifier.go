package chat

import "context"

// Notifier delivers a formatted text message to a chat channel — the
// egress half of §6's "format and forward a notification to the chat
// channel" effect for POST /report-inspector. Like Poller, the concrete
// platform adapter is out of scope; this is the seam internal/api drives.
type Notifier interface {
	Notify(ctx context.Context, channelID, text string) error
}
