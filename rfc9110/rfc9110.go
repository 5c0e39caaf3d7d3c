package rfc9110

// §  Internet Engineering Task Force (IETF)                  R. Fielding, Ed.
// §  Request for Comments: 9110                                         Adobe
// §  STD: 97                                            M. Nottingham, Ed.
// §  Obsoletes: 2818, 7230, 7231, 7232, 7233, 7235,                   Fastly
// §             7538, 7615, 7694                               J. Reschke, Ed.
// §  Updates: 3864                                                 greenbytes
// §  Category: Standards Track                                      June 2022
// §  ISSN: 2070-1721
// §
// §                             HTTP Semantics
// §
// §  Abstract
// §
// §     The Hypertext Transfer Protocol (HTTP) is a stateless application-
// §     level protocol for distributed, collaborative, hypertext information
// §     systems.  This document describes the overall architecture of HTTP,
// §     establishes common terminology, and defines aspects of the protocol
// §     that are shared by all versions.
//
// Only the parts needed to signal a temporary outage to crawlers are
// implemented here: status codes, the status line and Retry-After.
