package domain

import "time"

// NoticeDuration is how long a notice stays visible.
const NoticeDuration = 5 * time.Second

// Notice is a transient message.
type Notice struct {
	Text      string
	ShownAt   time.Time
	ExpiresAt time.Time
}

// NoticeBoard holds at most one notice. A new notice replaces the previous
// one and restarts the window.
type NoticeBoard struct {
	now    func() time.Time
	notice *Notice
}

// NewNoticeBoard returns a board using now as its clock. A nil clock means
// time.Now.
func NewNoticeBoard(now func() time.Time) *NoticeBoard {
	if now == nil {
		now = time.Now
	}
	return &NoticeBoard{now: now}
}

// Show replaces the current notice.
func (b *NoticeBoard) Show(text string) Notice {
	shown := b.now()
	n := Notice{Text: text, ShownAt: shown, ExpiresAt: shown.Add(NoticeDuration)}
	b.notice = &n
	return n
}

// Current returns the visible notice, if any. Expired notices are dropped.
func (b *NoticeBoard) Current() (Notice, bool) {
	if b.notice == nil {
		return Notice{}, false
	}
	if !b.now().Before(b.notice.ExpiresAt) {
		b.notice = nil
		return Notice{}, false
	}
	return *b.notice, true
}

// Dismiss clears the board.
func (b *NoticeBoard) Dismiss() {
	b.notice = nil
}
