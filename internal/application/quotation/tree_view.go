package quotation

import (
	"encoding/json"

	"github.com/beevik/etree"
	"github.com/erp/saleflow/internal/domain/catalog"
	"github.com/erp/saleflow/internal/domain/shared"
)

// FieldsViewGet adapts a product view arch for editing quantities from a quotation.
// Only tree views are changed, and only in quotation context.
func FieldsViewGet(arch, viewType string, quotationContext bool) (string, error) {
	if !quotationContext || viewType != catalog.ViewTypeTree {
		return arch, nil
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(arch); err != nil {
		return "", shared.NewDomainError("INVALID_VIEW", "Invalid view arch: "+err.Error())
	}
	root := doc.Root()
	if root == nil || root.Tag != catalog.ViewTypeTree {
		return "", shared.NewDomainError("INVALID_VIEW", "Tree view arch must have a tree root")
	}

	fields := root.FindElements("//field")
	if len(fields) == 0 {
		return "", shared.NewDomainError("INVALID_VIEW", "Tree view has no field")
	}
	for _, field := range fields {
		field.CreateAttr("readonly", "1")
		modifiers, err := readonlyModifiers(field.SelectAttrValue("modifiers", ""))
		if err != nil {
			return "", err
		}
		field.CreateAttr("modifiers", modifiers)
	}

	first := fields[0]
	qty := etree.NewElement("field")
	qty.CreateAttr("name", "qty")
	qty.CreateAttr("readonly", "0")
	first.Parent().InsertChild(first, qty)

	button := root.CreateElement("button")
	button.CreateAttr("name", "action_product_form")
	button.CreateAttr("type", "object")
	button.CreateAttr("icon", "fa-external-link")
	button.CreateAttr("string", "Open Product Form View")
	button.CreateAttr("groups", "base.group_user")

	root.CreateAttr("edit", "true")
	root.CreateAttr("create", "false")
	root.CreateAttr("editable", "top")

	out, err := doc.WriteToString()
	if err != nil {
		return "", err
	}
	return out, nil
}

// readonlyModifiers merges readonly into a field's modifiers JSON
func readonlyModifiers(raw string) (string, error) {
	modifiers := make(map[string]interface{})
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &modifiers); err != nil {
			return "", shared.NewDomainError("INVALID_VIEW", "Invalid field modifiers: "+raw)
		}
	}
	modifiers["readonly"] = true
	b, err := json.Marshal(modifiers)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
