/*
Package session runs the live preview as a single serialized execution context.

A Session owns the source document, the preferences, the debounce scheduler
and the preview controller. Edits, manual runs, clears and preference changes
from any goroutine are posted to one queue and applied in order by Run, and
debounce timers hand their firing back through the same queue. Because only
that loop touches the state, superseded timers are recognised and dropped
there, and no stale run can ever apply its result after a newer one.

	s := session.New(pipeline.New(markup.NewParser()), session.WithDisplays(display))
	go s.Run(ctx)
	_ = s.Edit(`<Button Content="Hi"/>`)
*/
package session
