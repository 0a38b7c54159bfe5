// Package scene implements the block diagram model and its interaction state
// machine.
//
// # Overview
//
// A [Scene] owns an ordered list of [Block] nodes and an ordered list of
// [Link] edges. It is the only component allowed to mutate them: platform
// adapters feed it raw input (typed text, named keys, mouse movement and
// clicks) and it turns that input into graph mutations.
//
//	s := scene.New()
//	s.SetMousePosition(geom.Pt(10, 10))
//	s.OnTextInput("n")                    // add a block under the cursor
//	s.OnMouseClick(scene.ButtonPrimary, scene.Modifiers{}) // focus it
//	s.OnTextInput("l")                    // start a link from it
//
// # Ownership
//
// Blocks are addressed by a stable [BlockID] handle. Links store handles,
// never pointers, and the scene resolves them when rendering. Deleting a
// block removes every link that references it in the same call, so a link
// can never outlive its endpoints.
//
// # Failure Model
//
// Interaction operations never fail. A click that hits nothing, an attempt
// to connect a block to itself, deleting with nothing focused and unbound
// keys are all silent no-ops. Unbound input is reported to the
// [observability.SceneHooks] so it can be logged.
//
// # Concurrency
//
// A Scene is not safe for concurrent use. Adapters call it from their single
// event loop goroutine; background work posts messages into that loop
// instead of touching the scene.
//
// [observability.SceneHooks]: github.com/matzehuels/blockone/pkg/observability.SceneHooks
package scene
