/*
 * doc.go, part of pmx
 *
 * Copyright 2025 Raul Mera A. (rmeraaatacademicosdotutadotcl)
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

/*
Package pmx contains the data model for dual-state (A/B) topologies used in
alchemical free-energy calculations: atoms carrying a physical and a mutated
state, residues, bonded terms with one parameter slot per state, and the
residue templates of the mutation database.

Atoms live in an arena owned by the Topology and are addressed by their
(topology-wide unique) id. Bonded terms store atom ids, never pointers, so
a Topology can be copied and edited without aliasing the original.

The resolution of the B-state parameters itself is done by the resolve
subpackage. Reading and writing Gromacs files is done by the top subpackage.
*/
package pmx
