package discovery

// domScanScript collects candidate paths straight from the live DOM:
// anchors, client-side-routing targets ([to]) and inline click handlers
// assigning location.href. Only values beginning with "/" are candidates;
// everything else is cross-origin or junk.
const domScanScript = `(() => {
	const uniq = new Set();
	const pick = (v) => {
		if (typeof v === 'string' && v.startsWith('/')) uniq.add(v);
	};
	document.querySelectorAll('a[href]').forEach((a) => pick(a.getAttribute('href') || ''));
	document.querySelectorAll('[to]').forEach((el) => pick(el.getAttribute('to') || ''));
	document.querySelectorAll('[onclick]').forEach((el) => {
		const v = el.getAttribute('onclick') || '';
		const m = v.match(/location\.href\s*=\s*['"]([^'"]+)['"]/);
		if (m) pick(m[1]);
	});
	return Array.from(uniq);
})()`

// nuxtStateScript snapshots the embedded client-rendering state. The JSON
// round-trip inside the page drops functions and cyclic references that
// would otherwise break serialization over the wire.
const nuxtStateScript = `(() => {
	try {
		return JSON.parse(JSON.stringify(window.__NUXT__ || null));
	} catch (e) {
		return null;
	}
})()`
