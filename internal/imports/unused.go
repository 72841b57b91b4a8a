package imports

// FindUnused flags imports whose bound names never occur among the file's
// referenced symbols. refs maps file path to the symbols referenced in that
// file (import statements themselves excluded by the caller).
//
// Wildcard imports and re-export lists are always treated as used; a
// reference through them is invisible to name matching, so flagging them
// would produce false positives. Typing-only imports are skipped entirely.
func FindUnused(edges []Edge, refs map[string][]string) []UnusedImport {
	refSets := make(map[string]map[string]bool, len(refs))
	for file, names := range refs {
		set := make(map[string]bool, len(names))
		for _, n := range names {
			set[n] = true
		}
		refSets[file] = set
	}

	var unused []UnusedImport
	for _, e := range edges {
		if e.TypingOnly || e.Wildcard || e.ReExport {
			continue
		}
		if len(e.BoundNames) == 0 {
			continue
		}
		set := refSets[e.From]
		used := false
		for _, name := range e.BoundNames {
			if set[name] {
				used = true
				break
			}
		}
		if !used {
			unused = append(unused, UnusedImport{
				File:   e.From,
				Module: e.Module,
				Names:  e.BoundNames,
				Line:   e.Line,
			})
		}
	}
	return unused
}
