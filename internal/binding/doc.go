// Package binding lowers the layered binding model (push constants,
// volatile constant buffers, bound SRV/UAV/sampler tables, bindless
// spaces) into one flattened hal.RootLayoutDesc, memoizes the resulting
// native root layout by content hash, and authors BindingSet /
// BindlessSet descriptor-table contents. Slots the caller never binds
// keep whatever the backend's descriptor heap holds there; no null view
// is written for them.
package binding
