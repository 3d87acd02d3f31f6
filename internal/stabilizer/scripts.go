package stabilizer

// clickLoadMoreScript finds the first visible, enabled element whose text
// contains one of the load-more labels and clicks it. The element click is
// tried first; a synthetic event is the fallback for targets the engine
// considers non-interactable. Returns whether anything was clicked.
const clickLoadMoreScript = `(() => {
	const labels = %s;
	const els = document.querySelectorAll('a, button, [role="button"]');
	for (const el of els) {
		const text = (el.innerText || el.textContent || '').trim().toLowerCase();
		if (!text || !labels.some((l) => text.includes(l))) continue;
		const style = getComputedStyle(el);
		if (style.display === 'none' || style.visibility === 'hidden') continue;
		if (el.disabled) continue;
		const rect = el.getBoundingClientRect();
		if (rect.width === 0 || rect.height === 0) continue;
		el.scrollIntoView({ block: 'center' });
		try {
			el.click();
		} catch (e) {
			try {
				el.dispatchEvent(new MouseEvent('click', { bubbles: true }));
			} catch (e2) {
				continue;
			}
		}
		return true;
	}
	return false;
})()`

// scrollLargestContainerScript scrolls the largest scrollable container to
// its bottom and returns the container's scroll extent, or null when no
// scrollable container exists. Containers with hidden overflow never load
// more content by scrolling and are skipped.
const scrollLargestContainerScript = `(() => {
	const els = Array.from(document.querySelectorAll('main,section,div,ul,ol,article'));
	const sc = els.filter((e) =>
		e.scrollHeight - e.clientHeight > 40 && getComputedStyle(e).overflowY !== 'hidden');
	if (sc.length === 0) return null;
	sc.sort((a, b) => (b.scrollHeight - b.clientHeight) - (a.scrollHeight - a.clientHeight));
	const el = sc[0];
	el.scrollTop = el.scrollHeight;
	return el.scrollHeight;
})()`

// scrollWindowScript scrolls the whole document to its bottom and returns
// the body's scroll extent.
const scrollWindowScript = `(() => {
	window.scrollTo(0, document.body.scrollHeight);
	return document.body.scrollHeight;
})()`
