// Package screen provides the rendered-screen harness: it owns the tree
// snapshot produced by the host test renderer and binds the full query
// surface to it.
//
// # Quick start
//
// Render a tree and make assertions:
//
//	func TestSaveButton(t *testing.T) {
//	    s := screen.Render(t, instance.El("View", nil,
//	        instance.El("Button", instance.Props{"role": "button"},
//	            instance.El("Text", nil, instance.TextNode("Save")),
//	        ),
//	    ))
//
//	    btn, err := s.GetByRole(textmatch.S("button"), query.RoleOptions{})
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    _ = btn
//	}
//
// Cleanup is automatic via t.Cleanup; set PROBE_SKIP_AUTO_CLEANUP=1 to
// manage unmounting yourself (call screen.Cleanup from your own hook).
//
// # Async queries
//
// Find* variants poll until the element appears or the timeout elapses.
// Install a wait.FakeClock to run them deterministically:
//
//	clk := wait.NewFakeClock()
//	s := screen.Render(t, initial, screen.WithClock(clk))
//	clk.AfterFunc(200*time.Millisecond, func() { s.Update(updated) })
//	inst, err := s.FindByText(textmatch.S("Loaded"))
//
// Named Find calls take match and wait options through screen.Match and
// screen.Wait:
//
//	inst, err = s.FindByText(textmatch.S("loaded"),
//	    screen.Match(query.Inexact()),
//	    screen.Wait(wait.WithTimeout(2*time.Second)))
//
// # Golden snapshots
//
// Capture and compare tree snapshots:
//
//	s.CaptureSnapshot().MatchesFile(t, "testdata/save_button.snapshot.json")
//
// Update with PROBE_UPDATE_SNAPSHOTS=1 go test ./...
package screen
