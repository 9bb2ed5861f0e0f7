package resp

// shapeFrame converts a finished aggregate frame's flat item list into its
// final Reply, applying the container-type flavoring of §4.7/§4.8: sets
// and plain/push arrays stay a flat list, maps and attributes pair
// adjacent elements up.
//
// The flavor is carried on each stack frame rather than as parser-global
// state, so shaping stays correct at every nesting depth simultaneously,
// which the RESP3 map-with-attribute-and-nested-set scenario in §8.2
// requires: see DESIGN.md.
func shapeFrame(f *frame) Reply {
	switch f.kind {
	case frameMap, frameAttribute:
		pairs := make([]Pair, 0, len(f.items)/2)
		for i := 0; i+1 < len(f.items); i += 2 {
			pairs = append(pairs, Pair{Key: f.items[i], Value: f.items[i+1]})
		}
		return Reply{Kind: KindMap, Pairs: pairs}
	case frameSet:
		return Reply{Kind: KindSet, Array: f.items}
	default: // frameArray, framePush
		return Reply{Kind: KindArray, Array: f.items}
	}
}
