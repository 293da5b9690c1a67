// Package descriptor manages the four native descriptor heaps (RTV, DSV,
// CBV/SRV/UAV, Sampler) a device exposes. It suballocates heap slots with
// a mutex-protected bitset and a rolling search cursor, grows a heap in
// power-of-two steps when it runs dry, and caches authored views keyed by
// (resource, subresource range, format override, view kind) so that two
// requests for the same view share one slot.
package descriptor
