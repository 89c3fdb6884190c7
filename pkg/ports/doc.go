/*
Package ports defines the boundary interfaces of the vitrine preview engine.

The core (injector, scheduler, pipeline, controller) depends only on these
interfaces; concrete parsers and display surfaces live in adapters.

# Key Interfaces

  - Parser: turns markup text into a value or reports a descriptive fault.
  - Visual: the capability of a parsed value to be shown on a display surface.
  - TypeNamer: reports the runtime type name of a parsed value.
  - Display: receives every applied preview result.
*/
package ports
