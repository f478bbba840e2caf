// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ui renders the server-side HTML.

Every page is a view model embedding BaseVM. Render executes the shared
"layout" template, which draws the navbar, the optional hero, toast and modal,
and includes the page body named by ContentTmpl:

	ui.Render(w, ui.VotingVM{
		BaseVM: ui.NewBase("Voting", "page.voting", r.URL.Path, id, cluster),
		Create: ui.BuildCreateVM(id, form, pending),
		List:   ui.BuildListVM(account, proposals, id, votePending, cluster),
	})

View models are built from query.Result values, so loading, failure and
empty states come from data rather than flags. Without a connected wallet
the creation form and every proposal card render only "Connect your wallet".

Output is minified with tdewolff/minify; proposal descriptions are markdown
rendered by goldmark with raw HTML dropped.
*/
package ui
