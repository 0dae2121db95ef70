package domain

// HierarchyNode is one node of the three-level tree handed to the area
// renderer: root "Assets" -> category nodes -> one leaf per asset. Leaves
// carry the normalized area share plus display metadata; interior nodes
// only carry children.
type HierarchyNode struct {
	Name      string          `json:"name"`
	Code      string          `json:"code,omitempty"`
	Value     float64         `json:"value,omitempty"`
	AvgChange *float64        `json:"avgChange,omitempty"`
	Count     int             `json:"count,omitempty"`
	Children  []HierarchyNode `json:"children,omitempty"`
}

func NewHierarchyRoot(categories ...HierarchyNode) HierarchyNode {
	return HierarchyNode{
		Name:     "Assets",
		Children: categories,
	}
}
