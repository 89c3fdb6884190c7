/*
Package vitrine is a live preview engine for XAML-style UI markup fragments.

A document is edited, and after a quiet period the engine optionally wraps it
with default namespace declarations, parses it and classifies the outcome as
exactly one of four previews: empty, a rendered control tree, a non-visual
value, or an error. Display surfaces (terminal, HTTP, MCP, Redis) only ever see
complete previews.

# Usage

	eng, err := vitrine.New(vitrine.WithDisplays(myDisplay))
	if err != nil {
		log.Fatal(err)
	}
	go eng.Run(ctx)

	// Every edit restarts the debounce window; only the last one is parsed.
	_ = eng.Session.Edit(`<Button Content="Hello"/>`)

For a single evaluation without a session use Preview:

	result := vitrine.Preview(ctx, `<TextBlock Text="Hi"/>`, true)
	fmt.Println(result.Status()) // Rendered: TextBlock

# Architecture

  - pkg/inject adds the default namespace declarations to a fragment.
  - pkg/debounce collapses bursts of edits into one run.
  - pkg/pipeline injects, parses and classifies one document.
  - pkg/preview holds the active preview and fans it out to displays.
  - pkg/session serializes edits, timers and runs on one goroutine.
  - pkg/markup is the default parser and control vocabulary.
*/
package vitrine
