package nodeio

import "fmt"

// AttributeFileName returns the canonical on-disk file name for a
// node's attribute stream, "<node_id>.<attribute>" per §4.2, e.g.
// "r0142.position".
func AttributeFileName(nodeID string, attribute string) string {
	return fmt.Sprintf("%s.%s", nodeID, attribute)
}
