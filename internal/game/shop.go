package game

// BuyEquipment purchases one catalog item. Ownership is a set keyed by
// catalog id; rebuying is rejected rather than refunded.
func (e *Engine) BuyEquipment(id string) Outcome {
	s, running := e.state()
	if !running {
		return fail("no game in progress")
	}
	item, found := e.catalog.EquipmentByID(id)
	if !found {
		return fail("No such item in the shop.")
	}
	if s.OwnsEquipment(id) {
		return fail("%s is already owned!", item.Name)
	}
	if s.Money < item.Price {
		return fail("Not enough money! %s costs $%d.", item.Name, item.Price)
	}
	next := s.Clone()
	next.Equipment = append(next.Equipment, item)
	next.Money -= item.Price
	e.store.Commit(next)
	return ok("Bought %s! -$%d", item.Name, item.Price)
}
