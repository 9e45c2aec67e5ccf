/*
Package vscroll virtualizes a large, logically laid-out collection of visual
items over a host container, attaching only the subset that currently falls
inside the viewport while callers see a container that behaves as if every
item were present.

# Overview

Three pieces cooperate:

  - SpatialIndex: an alternating-axis 2D search tree over item rectangles,
    answering "what intersects this viewport" queries.
  - ScrollEngine: pure coordinate mapping between a bounded, host-native
    scroll range (the "surface") and an arbitrarily large virtual content
    extent.
  - Manager: the item lifecycle manager. It intercepts structural mutations,
    measures new items off-surface, keeps the index and virtual extent in
    sync, and attaches/detaches items as the viewport moves.

# Quick Start

	host := myhost.NewContainer(...) // anything implementing vscroll.Container

	mgr, err := vscroll.New(host)
	if err != nil {
	    // host rejected
	}
	defer mgr.Destroy()

	// Route all structural mutations through the manager, never the raw host.
	for _, n := range nodes {
	    mgr.AppendChild(n)
	}

	// The manager reacts to host scroll events on its own; queries are
	// available at any time.
	visible := mgr.VisibleElements()
	hits := mgr.ElementsAt(120, 4800)

Callers must not mutate the container's children behind the manager's back:
the intercepted surface (AppendChild, InsertBefore, RemoveChild) is the only
supported mutation path once a manager is installed. Bypassing it desynchronizes
the spatial index from the host's real child set.

# Layout Policy

The reference layout is a single-axis vertical stack: each added item is
placed at x=0, y=current total virtual height. Hosts needing horizontal
placement supply coordinates through their own measurement collaborator.
*/
package vscroll
