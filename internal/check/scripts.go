package check

import (
	"fmt"

	"github.com/selimozcann/SiteHunter/internal/session"
)

// Page scripts evaluated in the browser. Each returns a JSON object and never
// null, so a failed evaluation always means the signal is unavailable.
// Numeric results are decoded into float64 fields.

const rectFn = `const rect = e => { const r = e.getBoundingClientRect(); return {x: r.left, y: r.top, width: r.width, height: r.height}; };`

const headerJS = `(() => {
  ` + rectFn + `
  const header = document.querySelector('header, .header, #header, .site-header');
  const logo = document.querySelector('header img, .logo img, .site-logo img, .navbar-brand img, .logo, #logo');
  const menu = document.querySelector('header nav, .main-menu, .primary-menu, header .menu, nav');
  const out = {header: header ? rect(header) : null, logo: logo ? rect(logo) : null, menu: null, children: []};
  if (menu && logo && !menu.contains(logo) && !logo.contains(menu)) out.menu = rect(menu);
  if (header && logo) {
    for (const el of Array.from(header.querySelectorAll('*')).slice(0, 200)) {
      if (el.tagName === 'IMG' || el.contains(logo) || logo.contains(el)) continue;
      const r = rect(el);
      if (r.width > 0 && r.height > 0) out.children.push(r);
      if (out.children.length >= 50) break;
    }
  }
  return out;
})()`

const colorJS = `(() => {
  const pick = (sel, n, bg) => Array.from(document.querySelectorAll(sel)).slice(0, n).map(e => {
    const cs = getComputedStyle(e);
    return bg ? (cs.backgroundColor || cs.color) : cs.color;
  });
  return {buttons: pick('button, .btn, a.button', 8, true), links: pick('a', 10, false)};
})()`

const contrastJS = `(() => {
  const clear = c => !c || c === 'transparent' || /rgba\([^)]*,\s*0\)$/.test(c);
  const bgOf = e => {
    for (let n = e; n && n.nodeType === 1; n = n.parentElement) {
      const c = getComputedStyle(n).backgroundColor;
      if (!clear(c)) return c;
    }
    return 'rgb(255, 255, 255)';
  };
  return {pairs: Array.from(document.querySelectorAll('p')).slice(0, %d).map(p => ({fg: getComputedStyle(p).color, bg: bgOf(p)}))};
})()`

const spacingJS = `(() => {
  const main = document.querySelector('main, #main, .main, #content, .content') || document.body;
  const sections = Array.from(main.children)
    .map(e => { const r = e.getBoundingClientRect(); return {y: r.top + window.scrollY, height: r.height}; })
    .filter(s => s.height > 0)
    .slice(0, 12);
  return {sections};
})()`

const typographyJS = `(() => {
  const sizes = sel => Array.from(document.querySelectorAll(sel)).slice(0, 10).map(e => getComputedStyle(e).fontSize);
  return {h1: sizes('h1'), h2: sizes('h2'), p: sizes('p')};
})()`

const responsiveJS = `(() => {
  let max = 0;
  for (const e of document.querySelectorAll('body > *, header, main, footer, section, article, .container')) {
    const w = e.getBoundingClientRect().width;
    if (w > max) max = w;
  }
  return {innerWidth: window.innerWidth, maxWidth: Math.round(max)};
})()`

const embeddedJS = `(() => ({images: Array.from(document.images).slice(0, %d).map(i => ({
  src: i.currentSrc || i.src || '', naturalWidth: i.naturalWidth, complete: i.complete
}))}))()`

const searchJS = `(() => {
  const input = document.querySelector("input[type='search'], input[name='s'], input[name='q'], input[placeholder*='search' i], .search-field");
  let button = document.querySelector(".search-submit, button.search-button, form[role='search'] button, .search-form button, .search-form input[type='submit']");
  if (!button) button = Array.from(document.querySelectorAll("button, input[type='submit']")).find(b => /search/i.test(b.textContent || b.value || ''));
  if (input) input.setAttribute('data-sitehunter', 'search-input');
  if (button) button.setAttribute('data-sitehunter', 'search-button');
  return {input: !!input, button: !!button};
})()`

const searchResultsJS = `(() => ({found: !!document.querySelector('.search-results, .search-result, .results, #search, #search-results')}))()`

const paginationJS = `(() => {
  const next = document.querySelector("a.next, .pagination .next, .nav-links .next, a[rel='next'], li.next a, .page-numbers.next");
  if (!next) return {present: false};
  next.setAttribute('data-sitehunter', 'pagination-next');
  const r = next.getBoundingClientRect();
  const cs = getComputedStyle(next);
  const visible = r.width > 0 && r.height > 0 && cs.visibility !== 'hidden' && cs.display !== 'none';
  const parent = next.parentElement;
  const disabled = next.hasAttribute('disabled') || next.getAttribute('aria-disabled') === 'true' ||
    next.classList.contains('disabled') || (!!parent && parent.classList.contains('disabled'));
  return {present: true, visible, disabled, href: next.href || ''};
})()`

const menuJS = `(() => {
  const toggle = document.querySelector(".hamburger, .menu-toggle, .navbar-toggler, .mobile-menu-toggle, button[aria-label*='menu' i]");
  const navs = Array.from(document.querySelectorAll('header nav, nav')).slice(0, 2).map(n => n.getBoundingClientRect().width);
  return {toggle: !!toggle, innerWidth: window.innerWidth, navWidths: navs};
})()`

const imageWidthJS = `(() => ({images: Array.from(document.images).slice(0, %d).map(i => ({
  src: i.currentSrc || i.src || '', width: i.getBoundingClientRect().width
}))}))()`

const scrollJS = `(() => ({
  innerWidth: window.innerWidth,
  scrollWidth: Math.max(document.documentElement.scrollWidth, document.body ? document.body.scrollWidth : 0)
}))()`

const footerJS = `(() => {
  const footer = document.querySelector('footer, .footer, #footer, .site-footer');
  if (!footer) return {present: false};
  return {present: true, innerWidth: window.innerWidth,
    widths: Array.from(footer.querySelectorAll('*')).slice(0, 12).map(e => e.getBoundingClientRect().width)};
})()`

const fontSizeJS = `(() => ({sizes: Array.from(document.querySelectorAll('p')).slice(0, %d).map(p => getComputedStyle(p).fontSize)}))()`

const overlapJS = `(() => {
  ` + rectFn + `
  const els = Array.from(document.querySelectorAll('button, a, .card, .article, p')).slice(0, %d);
  return {nodes: els.map((e, i) => ({
    tag: e.tagName.toLowerCase(),
    rect: rect(e),
    ancestors: els.map((o, j) => (j !== i && o.contains(e)) ? j : -1).filter(j => j >= 0)
  }))};
})()`

const jsBlockingJS = `(() => {
  const buf = window.` + session.LongTaskBuffer + `;
  let tasks = null;
  if (Array.isArray(buf)) {
    tasks = buf;
  } else if (window.PerformanceObserver && (PerformanceObserver.supportedEntryTypes || []).includes('longtask')) {
    tasks = performance.getEntriesByType('longtask').map(e => ({name: e.name, duration: e.duration, startTime: e.startTime}));
  }
  const nav = performance.getEntriesByType('navigation')[0];
  const t = performance.timing;
  const navigationMs = nav && nav.duration > 0 ? nav.duration : (t && t.loadEventEnd > 0 ? t.loadEventEnd - t.navigationStart : -1);
  return {supported: tasks !== null, tasks: tasks || [], navigationMs};
})()`

const loadTimeJS = `(() => {
  const nav = performance.getEntriesByType('navigation')[0];
  if (nav && nav.duration > 0) return {ms: nav.duration};
  const t = performance.timing;
  if (t && t.loadEventEnd > 0) return {ms: t.loadEventEnd - t.navigationStart};
  return {ms: -1};
})()`

// Selectors for elements tagged by the scripts above.
const (
	searchInputSel    = `[data-sitehunter="search-input"]`
	searchButtonSel   = `[data-sitehunter="search-button"]`
	paginationNextSel = `[data-sitehunter="pagination-next"]`
)

func (b *battery) contrastScript() string { return fmt.Sprintf(contrastJS, b.opts.Paragraphs) }
func (b *battery) embeddedScript() string { return fmt.Sprintf(embeddedJS, b.opts.EmbeddedImages) }
func (b *battery) imageWidthScript() string { return fmt.Sprintf(imageWidthJS, b.opts.ResizeImages) }
func (b *battery) fontSizeScript() string { return fmt.Sprintf(fontSizeJS, b.opts.Paragraphs) }
func (b *battery) overlapScript() string { return fmt.Sprintf(overlapJS, b.opts.OverlapNodes) }
