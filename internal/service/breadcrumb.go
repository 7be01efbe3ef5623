// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import "bip-go/internal/util"

// HomeCrumbTitle is the label of the leading breadcrumb.
const HomeCrumbTitle = "Strona główna"

// Breadcrumb is one entry in the navigational trail. The final entry is
// always active with an empty URL.
type Breadcrumb struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	IsActive bool   `json:"is_active"`
}

// BuildBreadcrumbs produces the breadcrumb trail for a resolved
// location. articleTitle, when non-empty, overrides the label of the
// final crumb for article pages. The output is a pure function of the
// inputs.
func BuildBreadcrumbs(resolved ResolvedLocation, articleTitle string) []Breadcrumb {
	if resolved.Kind == ResolutionHome {
		return []Breadcrumb{{Title: HomeCrumbTitle, URL: "", IsActive: true}}
	}

	crumbs := []Breadcrumb{{Title: HomeCrumbTitle, URL: "/", IsActive: false}}

	switch resolved.Kind {
	case ResolutionTopLevel:
		crumbs = append(crumbs, Breadcrumb{Title: resolved.Parent.Title, URL: "", IsActive: true})

	case ResolutionChild:
		crumbs = append(crumbs, Breadcrumb{
			Title: resolved.Parent.Title,
			URL:   "/" + resolved.Parent.Slug,
		})
		if articleTitle != "" {
			crumbs = append(crumbs,
				Breadcrumb{
					Title: resolved.Child.Title,
					URL:   "/" + resolved.Parent.Slug + "/" + resolved.Child.Slug,
				},
				Breadcrumb{Title: articleTitle, URL: "", IsActive: true},
			)
		} else {
			crumbs = append(crumbs, Breadcrumb{Title: resolved.Child.Title, URL: "", IsActive: true})
		}

	case ResolutionUnmatchedHierarchical:
		if resolved.Parent != nil {
			crumbs = append(crumbs, Breadcrumb{
				Title: resolved.Parent.Title,
				URL:   "/" + resolved.Parent.Slug,
			})
		}
		title := articleTitle
		if title == "" {
			title = util.TitleFromSlug(resolved.Rest)
		}
		crumbs = append(crumbs, Breadcrumb{Title: title, URL: "", IsActive: true})

	case ResolutionNotFound:
		if resolved.Rest == "" {
			// No usable segment: home stays the sole, active crumb.
			return []Breadcrumb{{Title: HomeCrumbTitle, URL: "", IsActive: true}}
		}
		crumbs = append(crumbs, Breadcrumb{Title: util.TitleFromSlug(resolved.Rest), URL: "", IsActive: true})
	}

	return crumbs
}
