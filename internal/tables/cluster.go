package tables

// cluster is one recognized table region on a page: a header with its own
// column map and the lines below it, up to the next header or end of page.
type cluster struct {
	head  header
	lines []string
	order int
}

// detectClusters scans the page top to bottom. Every header line closes the
// open cluster and opens a new one; entry-shaped lines belong to the open
// cluster. The cluster's 0-based position on the page becomes the
// TableOrder of every entry extracted from it.
func detectClusters(lines []string) []cluster {
	var out []cluster
	var cur *cluster

	for i, line := range lines {
		if h, ok := detectHeader(line); ok {
			h.line = i
			if cur != nil {
				out = append(out, *cur)
			}
			cur = &cluster{head: h, order: len(out)}
			continue
		}
		if cur != nil {
			cur.lines = append(cur.lines, line)
		}
	}
	if cur != nil {
		out = append(out, *cur)
	}
	return out
}
