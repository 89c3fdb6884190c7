/*
Package domain contains the core models of the vitrine preview engine.

It is kept pure and free of I/O: the parser, editing surface and display
surfaces live behind the interfaces in package ports.

# Key Entities

  - Result: the tri-state preview (Empty, Rendered, NonVisual, Failed). Exactly one variant is active.
  - Preferences: the auto-run and wrap toggles owned by the editing surface.
  - ParseFailure: the only error kind the pipeline produces; it never escapes a run.
  - RunEvent: the observable record of a single pipeline run.
*/
package domain
